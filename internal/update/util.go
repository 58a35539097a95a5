package update

import (
	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/query"
	"github.com/sandeepkv93/teamcal/internal/views"
)

func memberRows(members []model.TeamMember, tasks []model.Task) []views.MemberRow {
	rows := make([]views.MemberRow, 0, len(members))
	for _, mem := range members {
		rows = append(rows, views.MemberRow{Member: mem, OpenTasks: query.OpenTaskCount(tasks, mem.ID)})
	}
	return rows
}
