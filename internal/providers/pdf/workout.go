package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateWorkoutSheet(ctx context.Context, data WorkoutSheetData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(15,
		text.NewCol(12, data.Title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Student: "+data.StudentName, props.Text{Top: 0}),
			text.New("Trainer: "+data.TrainerName, props.Text{Top: 4}),
			text.New("Issued: "+data.IssuedOn, props.Text{Top: 8}),
		),
		col.New(6),
	)

	// Table Header
	m.AddRow(10,
		text.NewCol(4, "Exercise", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Sets", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Reps", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Load", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Rest", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
	)

	for _, ex := range data.Exercises {
		rest := ""
		if ex.RestSecs > 0 {
			rest = fmt.Sprintf("%ds", ex.RestSecs)
		}
		m.AddRow(12,
			text.NewCol(4, ex.Name, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", ex.Sets), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, ex.Reps, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, ex.Load, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, rest, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, ex.Notes, props.Text{Size: 8}),
		)
	}

	if data.Notes != "" {
		m.AddRow(20,
			text.NewCol(12, "Notes: "+data.Notes, props.Text{Size: 9, Top: 5}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
