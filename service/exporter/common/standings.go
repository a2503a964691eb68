package common

import (
	"strconv"

	"github.com/to404hanga/online_judge_frontend/model"
)

// HeaderRow 表头: 用户名, 各任务标题, 总分
func HeaderRow(standings *model.Standings) []string {
	header := make([]string, 0, len(standings.Tasks)+2)
	header = append(header, "Username")
	for _, task := range standings.Tasks {
		header = append(header, task.Title)
	}
	header = append(header, "Total")
	return header
}

// RecordRow 单行成绩: 未提交的格子留空, 已解出的分数带 * 标记
func RecordRow(row model.StandingsRow) []string {
	record := make([]string, 0, len(row.Cells)+2)
	record = append(record, row.User.Username)
	for _, cell := range row.Cells {
		record = append(record, CellText(cell))
	}
	record = append(record, strconv.Itoa(row.TotalScore))
	return record
}

func CellText(cell model.StandingsCell) string {
	if !cell.Present {
		return ""
	}
	text := strconv.Itoa(cell.Score)
	if cell.Solved {
		text += "*"
	}
	return text
}
