package admin

import (
	"community-bot/bot"
	"community-bot/utils"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

const maxSQLRows = 20

// HandleSQL runs an ad-hoc query against the local event store and
// renders the result as a monospace table. Owner only.
func HandleSQL(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	user := utils.InteractionUser(i)
	if user == nil || !b.GetConfig().IsDeveloper(user.ID) {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return
	}

	data := i.ApplicationCommandData()
	query := data.Options[0].StringValue()
	query = strings.TrimSpace(strings.Trim(strings.ReplaceAll(query, "```sql", ""), "`"))

	rows, err := b.GetDB().Queryx(query)
	if err != nil {
		utils.SendErrorResponse(s, i, fmt.Sprintf("```\n%v\n```", err))
		return
	}
	defer rows.Close()

	columns, results, err := collectRows(rows, maxSQLRows)
	if err != nil {
		utils.SendErrorResponse(s, i, fmt.Sprintf("```\n%v\n```", err))
		return
	}

	content := clampCodeBlock("```sql\n" + utils.RenderTable(columns, results) + "\n```")
	utils.SendSimpleResponse(s, i, content)
}

func collectRows(rows *sqlx.Rows, limit int) ([]string, [][]string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var results [][]string
	for rows.Next() && len(results) < limit {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, nil, err
		}
		row := make([]string, len(values))
		for n, value := range values {
			if raw, ok := value.([]byte); ok {
				row[n] = string(raw)
			} else {
				row[n] = fmt.Sprint(value)
			}
		}
		results = append(results, row)
	}
	// A mid-iteration failure must not render as a short result set.
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, results, nil
}

// clampCodeBlock keeps a reply inside Discord's message length limit,
// counting characters rather than bytes so multibyte cell values are
// never cut mid-rune.
func clampCodeBlock(content string) string {
	runes := []rune(content)
	if len(runes) <= 1990 {
		return content
	}
	return string(runes[:1980]) + "\n...```"
}
