package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/service/exporter"
	"github.com/to404hanga/online_judge_frontend/service/exporter/common"
	"github.com/to404hanga/pkg404/gotools/transform"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type CSVStandingsExporter struct {
	log loggerv2.Logger
}

var _ exporter.StandingsExporter = (*CSVStandingsExporter)(nil)

func NewCSVStandingsExporter(log loggerv2.Logger) *CSVStandingsExporter {
	return &CSVStandingsExporter{
		log: log,
	}
}

func (e *CSVStandingsExporter) Export(ctx context.Context, contest *model.Contest, standings *model.Standings, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write(common.HeaderRow(standings)); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	records := transform.SliceFromSlice(standings.Table, func(idx int, row model.StandingsRow) []string {
		return common.RecordRow(row)
	})
	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("write records failed: %w", err)
	}
	return nil
}
