package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"iot_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var readingColumns = []string{"id", "device_id", "temperature", "humidity", "soil_moisture", "recorded_at"}

func TestTelemetrySQLite_Append(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTelemetrySQLite(db)

	soil := 41.5
	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WithArgs(sqlmock.AnyArg(), "D1", 21.5, 55.0, 41.5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rd, err := repo.Append(context.Background(), models.Reading{
		DeviceID:     "D1",
		Temperature:  21.5,
		Humidity:     55,
		SoilMoisture: &soil,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if rd.ID == "" || rd.Timestamp.IsZero() || rd.Timestamp.Location() != time.UTC {
		t.Fatalf("defaults not applied: %+v", rd)
	}
}

func TestTelemetrySQLite_Append_WithoutSoilMoisture(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTelemetrySQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WithArgs(sqlmock.AnyArg(), "D1", 20.0, 50.0, nil, sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	if _, err := repo.Append(context.Background(), models.Reading{DeviceID: "D1", Temperature: 20, Humidity: 50}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTelemetrySQLite_Latest(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTelemetrySQLite(db)

	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectLatestReadingSQL)).
		WithArgs("D1").
		WillReturnRows(sqlmock.NewRows(readingColumns).AddRow("r1", "D1", 22.0, 60.0, nil, ts))
	mock.ExpectQuery(regexp.QuoteMeta(selectLatestReadingSQL)).
		WithArgs("D2").
		WillReturnRows(sqlmock.NewRows(readingColumns))

	rd, err := repo.Latest(context.Background(), "D1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if rd == nil || rd.ID != "r1" || rd.SoilMoisture != nil {
		t.Fatalf("unexpected reading: %+v", rd)
	}

	rd, err = repo.Latest(context.Background(), "D2")
	if err != nil || rd != nil {
		t.Fatalf("expected (nil, nil) for empty device, got (%+v, %v)", rd, err)
	}
}

func TestTelemetrySQLite_History(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTelemetrySQLite(db)

	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectHistorySQL)).
		WithArgs("D1", 2).
		WillReturnRows(sqlmock.NewRows(readingColumns).
			AddRow("r2", "D1", 23.0, 61.0, 40.0, ts.Add(time.Minute)).
			AddRow("r1", "D1", 22.0, 60.0, nil, ts))

	out, err := repo.History(context.Background(), "D1", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(out) != 2 || out[0].ID != "r2" || out[0].SoilMoisture == nil || *out[0].SoilMoisture != 40 {
		t.Fatalf("unexpected history: %+v", out)
	}
}
