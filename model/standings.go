package model

import (
	stdjson "encoding/json"
	"fmt"

	json "github.com/bytedance/sonic"
)

// Standings 排行榜快照, 服务端整表重算, 客户端整体替换, 不做增量合并
type Standings struct {
	Tasks []StandingsTask `json:"tasks"`
	Table []StandingsRow  `json:"table"`
}

type StandingsTask struct {
	ID    uint64   `json:"id"`
	Type  PageType `json:"type"`
	Title string   `json:"title"`
}

type StandingsUser struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// StandingsRow 一行榜单. 上游以位置数组下发: 首元素为用户, 其余为各题单元格
type StandingsRow struct {
	User       StandingsUser   `json:"user"`
	TotalScore int             `json:"total_score"`
	Cells      []StandingsCell `json:"cells"`
}

func (r *StandingsRow) UnmarshalJSON(data []byte) error {
	var raw []stdjson.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("standings row is not an array: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("standings row is empty")
	}
	if err := json.Unmarshal(raw[0], &r.User); err != nil {
		return fmt.Errorf("standings row user cell: %w", err)
	}
	r.Cells = make([]StandingsCell, 0, len(raw)-1)
	r.TotalScore = 0
	for i, cellRaw := range raw[1:] {
		var cell StandingsCell
		if err := json.Unmarshal(cellRaw, &cell); err != nil {
			return fmt.Errorf("standings row cell %d: %w", i, err)
		}
		if cell.Present {
			r.TotalScore += cell.Score
		}
		r.Cells = append(r.Cells, cell)
	}
	return nil
}

// StandingsCell 单题得分格. 上游下发 [solution_id, score, is_solved],
// 未作答时 solution_id 为 null
type StandingsCell struct {
	SolutionID uint64 `json:"solution_id"`
	Score      int    `json:"score"`
	Solved     bool   `json:"solved"`
	Present    bool   `json:"present"`
}

func (c *StandingsCell) UnmarshalJSON(data []byte) error {
	c.Present = false
	var raw []stdjson.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// 整格为 null 表示该题未作答
		var empty any
		if err2 := json.Unmarshal(data, &empty); err2 == nil && empty == nil {
			return nil
		}
		return fmt.Errorf("standings cell is not an array: %w", err)
	}
	if len(raw) < 3 {
		return nil
	}
	var id *uint64
	if err := json.Unmarshal(raw[0], &id); err != nil {
		return fmt.Errorf("standings cell solution id: %w", err)
	}
	if id == nil {
		return nil
	}
	c.SolutionID = *id
	if err := json.Unmarshal(raw[1], &c.Score); err != nil {
		return fmt.Errorf("standings cell score: %w", err)
	}
	if err := json.Unmarshal(raw[2], &c.Solved); err != nil {
		return fmt.Errorf("standings cell solved flag: %w", err)
	}
	c.Present = true
	return nil
}
