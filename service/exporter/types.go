package exporter

import (
	"context"
	"io"

	"github.com/to404hanga/online_judge_frontend/model"
)

type StandingsExporter interface {
	Export(ctx context.Context, contest *model.Contest, standings *model.Standings, writer io.Writer) error
}
