package prayer

import (
	"context"
	"testing"
	"time"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

func TestSelectDayExactDate(t *testing.T) {
	monthly := model.MonthlySchedule{
		day("2025-03-09", 9),
		day("2025-03-10", 10),
		day("2025-03-11", 11),
	}
	got := SelectDay(monthly, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))
	if got == nil || got.TanggalLengkap != "2025-03-10" {
		t.Fatalf("got %+v, want 2025-03-10", got)
	}
}

func TestSelectDayFallsBackToDayOfMonth(t *testing.T) {
	// Provider drifted to a different date-key format.
	monthly := model.MonthlySchedule{
		day("10/03/2025", 10),
		day("11/03/2025", 11),
	}
	got := SelectDay(monthly, time.Date(2025, time.March, 11, 8, 0, 0, 0, time.UTC))
	if got == nil || got.Tanggal != 11 {
		t.Fatalf("got %+v, want day-of-month 11", got)
	}
}

func TestSelectDayMissing(t *testing.T) {
	monthly := model.MonthlySchedule{day("2025-03-10", 10)}
	if got := SelectDay(monthly, time.Date(2025, time.April, 2, 8, 0, 0, 0, time.UTC)); got != nil {
		t.Fatalf("got %+v, want nil for uncovered date", got)
	}
}

type fakeSource struct {
	province, city string
	month, year    int
	payload        model.MonthlySchedule
}

func (f *fakeSource) MonthlySchedule(ctx context.Context, province, city string, month, year int) (model.MonthlySchedule, error) {
	f.province, f.city, f.month, f.year = province, city, month, year
	return f.payload, nil
}

func TestFetchMonthPassesLocationAndDate(t *testing.T) {
	src := &fakeSource{payload: model.MonthlySchedule{day("2025-03-10", 10)}}
	f := &Fetcher{Source: src}

	loc := model.ResolvedLocation{Province: "JAWA BARAT", City: "KOTA BANDUNG"}
	got, err := f.FetchMonth(context.Background(), loc, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d days, want 1", len(got))
	}
	if src.province != "JAWA BARAT" || src.city != "KOTA BANDUNG" {
		t.Errorf("source called with %q/%q", src.province, src.city)
	}
	if src.month != 3 || src.year != 2025 {
		t.Errorf("source called with %d/%d, want 3/2025", src.month, src.year)
	}
}
