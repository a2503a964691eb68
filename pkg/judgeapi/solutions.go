package judgeapi

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"net/http"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/to404hanga/online_judge_frontend/model"
)

// solutionDTO 上游提交记录原始形态, data 字段按任务类型二次解码
type solutionDTO struct {
	ID           uint64             `json:"id"`
	TaskID       uint64             `json:"task_id"`
	SubmittedAt  time.Time          `json:"submitted_at"`
	ShortVerdict string             `json:"short_verdict"`
	Score        int                `json:"score"`
	IsSolved     bool               `json:"is_solved"`
	Data         stdjson.RawMessage `json:"data"`
}

func (dto *solutionDTO) toModel(taskType model.SolutionType) (*model.Solution, error) {
	solution := &model.Solution{
		ID:           dto.ID,
		TaskID:       dto.TaskID,
		SubmittedAt:  dto.SubmittedAt,
		ShortVerdict: dto.ShortVerdict,
		Score:        dto.Score,
		IsSolved:     dto.IsSolved,
	}
	if len(dto.Data) == 0 {
		return solution, nil
	}
	switch taskType {
	case model.SolutionTypeQuiz:
		var data model.QuizSolutionData
		if err := json.Unmarshal(dto.Data, &data); err != nil {
			return nil, fmt.Errorf("decode quiz solution %d data: %w", dto.ID, err)
		}
		solution.Quiz = &data
	case model.SolutionTypeCode:
		var data model.CodeSolutionData
		if err := json.Unmarshal(dto.Data, &data); err != nil {
			return nil, fmt.Errorf("decode code solution %d data: %w", dto.ID, err)
		}
		solution.Code = &data
	default:
		return nil, fmt.Errorf("unknown solution type %q", taskType)
	}
	return solution, nil
}

func (c *HTTPClient) SubmitQuizSolution(ctx context.Context, token string, taskID uint64, text string) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("solutions/post/quiz/%d/", taskID), token, map[string]string{
		"text": text,
	}, nil)
}

func (c *HTTPClient) SubmitCodeSolution(ctx context.Context, token string, taskID uint64, text, compiler string) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("solutions/post/code/%d/", taskID), token, map[string]string{
		"text":            text,
		"compiler":        compiler,
		"submission_type": "str",
	}, nil)
}

func (c *HTTPClient) GetTaskSolutions(ctx context.Context, token string, taskType model.SolutionType, taskID uint64) ([]model.Solution, error) {
	var dtos []solutionDTO
	if err := c.get(ctx, fmt.Sprintf("solutions/for-task/%s/%d/", taskType, taskID), token, &dtos); err != nil {
		return nil, err
	}
	solutions := make([]model.Solution, 0, len(dtos))
	for i := range dtos {
		solution, err := dtos[i].toModel(taskType)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, *solution)
	}
	return solutions, nil
}

func (c *HTTPClient) GetSolution(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error) {
	var dto solutionDTO
	if err := c.get(ctx, fmt.Sprintf("solutions/get/%s/%d/", solutionType, solutionID), token, &dto); err != nil {
		return nil, err
	}
	return dto.toModel(solutionType)
}

func (c *HTTPClient) GetStandings(ctx context.Context, token string, contestID uint64) (*model.Standings, error) {
	var standings model.Standings
	if err := c.get(ctx, fmt.Sprintf("solutions/standings/%d/", contestID), token, &standings); err != nil {
		return nil, err
	}
	return &standings, nil
}
