package utils

import (
	"testing"
	"time"

	"dewy/internal/models"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone Asia/Taipei",
			timezone: "Asia/Taipei",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "Local timezone",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "UTC timezone",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "Asia/Taipei timezone",
			timezone: "Asia/Taipei",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := NowInTimezone(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("NowInTimezone() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if now.IsZero() {
					t.Errorf("NowInTimezone() returned zero time")
				}
				if tt.timezone == "Local" || tt.timezone == "" {
					if now.Location() != time.Local {
						t.Errorf("NowInTimezone() location = %v, want Local", now.Location())
					}
				} else {
					expectedLoc, _ := time.LoadLocation(tt.timezone)
					if now.Location().String() != expectedLoc.String() {
						t.Errorf("NowInTimezone() location = %v, want %v", now.Location(), expectedLoc)
					}
				}
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	utc, _ := time.LoadLocation("UTC")
	taipei, _ := time.LoadLocation("Asia/Taipei")

	tests := []struct {
		name      string
		dateStr   string
		loc       *time.Location
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{
			name:      "valid date in UTC",
			dateStr:   "2026-01-15",
			loc:       utc,
			wantYear:  2026,
			wantMonth: time.January,
			wantDay:   15,
			wantErr:   false,
		},
		{
			name:      "valid date in Asia/Taipei",
			dateStr:   "2025-12-31",
			loc:       taipei,
			wantYear:  2025,
			wantMonth: time.December,
			wantDay:   31,
			wantErr:   false,
		},
		{
			name:    "invalid format",
			dateStr: "2026/01/15",
			loc:     utc,
			wantErr: true,
		},
		{
			name:    "invalid date",
			dateStr: "2026-13-01",
			loc:     utc,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateInLocation(tt.dateStr, tt.loc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateInLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if got.Year() != tt.wantYear {
					t.Errorf("ParseDateInLocation() year = %v, want %v", got.Year(), tt.wantYear)
				}
				if got.Month() != tt.wantMonth {
					t.Errorf("ParseDateInLocation() month = %v, want %v", got.Month(), tt.wantMonth)
				}
				if got.Day() != tt.wantDay {
					t.Errorf("ParseDateInLocation() day = %v, want %v", got.Day(), tt.wantDay)
				}
				if got.Location() != tt.loc {
					t.Errorf("ParseDateInLocation() location = %v, want %v", got.Location(), tt.loc)
				}
				// Should be at midnight
				if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
					t.Errorf("ParseDateInLocation() time = %02d:%02d:%02d, want 00:00:00", got.Hour(), got.Minute(), got.Second())
				}
			}
		})
	}
}

func TestResolveDateArg(t *testing.T) {
	settings := models.Settings{Timezone: "UTC"}
	now, err := NowInTimezone("UTC")
	if err != nil {
		t.Fatalf("NowInTimezone() error = %v", err)
	}

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{
			name: "empty resolves to today",
			arg:  "",
			want: DateKey(now),
		},
		{
			name: "today keyword",
			arg:  "today",
			want: DateKey(now),
		},
		{
			name: "yesterday keyword",
			arg:  "yesterday",
			want: DateKey(now.AddDate(0, 0, -1)),
		},
		{
			name: "tomorrow keyword",
			arg:  "tomorrow",
			want: DateKey(now.AddDate(0, 0, 1)),
		},
		{
			name: "explicit date passes through",
			arg:  "2026-03-14",
			want: "2026-03-14",
		},
		{
			name:    "malformed date rejected",
			arg:     "14-03-2026",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDateArg(tt.arg, settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResolveDateArg() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ResolveDateArg() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPastDate(t *testing.T) {
	settings := models.Settings{Timezone: "UTC"}
	now, err := NowInTimezone("UTC")
	if err != nil {
		t.Fatalf("NowInTimezone() error = %v", err)
	}

	tests := []struct {
		name    string
		dateKey string
		want    bool
	}{
		{
			name:    "yesterday is past",
			dateKey: DateKey(now.AddDate(0, 0, -1)),
			want:    true,
		},
		{
			name:    "today is not past",
			dateKey: DateKey(now),
			want:    false,
		},
		{
			name:    "tomorrow is not past",
			dateKey: DateKey(now.AddDate(0, 0, 1)),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsPastDate(tt.dateKey, settings)
			if err != nil {
				t.Fatalf("IsPastDate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsPastDate(%q) = %v, want %v", tt.dateKey, got, tt.want)
			}
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	settings := models.Settings{Timezone: "UTC"}

	tests := []struct {
		name    string
		dateKey string
		want    time.Weekday
	}{
		{
			name:    "a known Monday",
			dateKey: "2026-08-31",
			want:    time.Monday,
		},
		{
			name:    "a known Sunday",
			dateKey: "2026-09-06",
			want:    time.Sunday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeekdayOf(tt.dateKey, settings)
			if err != nil {
				t.Fatalf("WeekdayOf() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("WeekdayOf(%q) = %v, want %v", tt.dateKey, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{
			name:     "empty string is valid",
			timezone: "",
			want:     true,
		},
		{
			name:     "Local is valid",
			timezone: "Local",
			want:     true,
		},
		{
			name:     "UTC is valid",
			timezone: "UTC",
			want:     true,
		},
		{
			name:     "Asia/Taipei is valid",
			timezone: "Asia/Taipei",
			want:     true,
		},
		{
			name:     "Invalid/Timezone is invalid",
			timezone: "Invalid/Timezone",
			want:     false,
		},
		{
			name:     "random string is invalid",
			timezone: "not-a-timezone",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone() = %v, want %v", got, tt.want)
			}
		})
	}
}
