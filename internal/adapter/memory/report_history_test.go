package memory

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/garden/internal/core/model"
)

func TestReportHistory(t *testing.T) {
	history := NewReportHistory(2)

	if last := history.Last(); last != nil {
		t.Fatalf("history.Last(): expected nil, got %v", last)
	}

	ctx := context.Background()

	for i := range 3 {
		report := &model.DueReport{
			ScanID:    model.NewScanID(),
			ScannedAt: time.Unix(int64(i), 0),
		}

		if err := history.Report(ctx, report); err != nil {
			t.Fatalf("%+v", err)
		}
	}

	reports := history.All()

	if e, g := 2, len(reports); e != g {
		t.Fatalf("len(reports): expected %d, got %d", e, g)
	}

	if e, g := int64(2), history.Last().ScannedAt.Unix(); e != g {
		t.Errorf("history.Last().ScannedAt: expected %d, got %d", e, g)
	}

	if e, g := int64(1), reports[0].ScannedAt.Unix(); e != g {
		t.Errorf("reports[0].ScannedAt: expected %d, got %d", e, g)
	}
}
