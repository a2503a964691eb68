package model

import (
	stdjson "encoding/json"
	"fmt"

	json "github.com/bytedance/sonic"
)

// Compiler 编译器注册表条目, 上游以 [id, highlight_language] 二元组下发
type Compiler struct {
	ID        string `json:"id"`
	Highlight string `json:"highlight"` // 前端代码高亮语言标签
}

// MarshalJSON 保持二元组形式, 缓存与下发的格式与上游一致
func (c Compiler) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.ID, c.Highlight})
}

func (c *Compiler) UnmarshalJSON(data []byte) error {
	var raw []stdjson.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("compiler entry is not an array: %w", err)
	}
	if len(raw) < 2 {
		return fmt.Errorf("compiler entry has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &c.ID); err != nil {
		return fmt.Errorf("compiler id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &c.Highlight); err != nil {
		return fmt.Errorf("compiler highlight language: %w", err)
	}
	return nil
}
