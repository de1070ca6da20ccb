package weather

import (
	"reflect"
	"testing"
)

func reading(clouds, humidity, wind, visibility, precip float64) Reading {
	return Reading{
		CloudCoverPct: Float(clouds),
		HumidityPct:   Float(humidity),
		WindSpeedKmh:  Float(wind),
		VisibilityKm:  Float(visibility),
		PrecipMm:      Float(precip),
	}
}

// TestAssessIdealConditions verifies the benchmark clear-night reading scores
// a perfect 100 after clamping the mild-wind bonus.
func TestAssessIdealConditions(t *testing.T) {
	a := Assess(reading(20, 65, 5, 10, 0))

	if a.Score != 100 {
		t.Fatalf("expected score 100, got %d", a.Score)
	}
	if a.Rating != RatingExcellent {
		t.Fatalf("expected rating %s, got %s", RatingExcellent, a.Rating)
	}
}

// TestAssessSevereConditions verifies a storm-like reading bottoms out at 0.
func TestAssessSevereConditions(t *testing.T) {
	a := Assess(reading(90, 95, 20, 3, 2))

	if a.Score != 0 {
		t.Fatalf("expected score 0, got %d", a.Score)
	}
	if a.Rating != RatingPoor {
		t.Fatalf("expected rating %s, got %s", RatingPoor, a.Rating)
	}
}

func TestAssessPenaltyBrackets(t *testing.T) {
	tests := []struct {
		name  string
		in    Reading
		score int
	}{
		// Cloud brackets, all else neutral (humidity 60, wind 0, vis 10, precip 0).
		{"clouds at boundary 20", reading(20, 60, 0, 10, 0), 100},
		{"clouds 21", reading(21, 60, 0, 10, 0), 90},
		{"clouds 41", reading(41, 60, 0, 10, 0), 80},
		{"clouds 61", reading(61, 60, 0, 10, 0), 70},
		{"clouds 81", reading(81, 60, 0, 10, 0), 50},

		// Humidity brackets.
		{"humidity 71", reading(0, 71, 0, 10, 0), 95},
		{"humidity 81", reading(0, 81, 0, 10, 0), 90},
		{"humidity 91", reading(0, 91, 0, 10, 0), 85},

		// Visibility brackets.
		{"visibility 7.9", reading(0, 60, 0, 7.9, 0), 90},
		{"visibility 4.9", reading(0, 60, 0, 4.9, 0), 80},

		// Wind: strong penalized, mild rewarded (and clamped at 100).
		{"wind 16", reading(0, 60, 16, 10, 0), 90},
		{"wind 10 bonus clamped", reading(0, 60, 10, 10, 0), 100},
		{"wind 4 no bonus", reading(0, 60, 4, 10, 0), 100},

		// Any precipitation.
		{"precip 0.1", reading(0, 60, 0, 10, 0.1), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assess(tt.in)
			if a.Score != tt.score {
				t.Errorf("Assess(%s) score = %d, want %d", tt.name, a.Score, tt.score)
			}
		})
	}
}

// TestAssessScoreRange exercises the whole input grid and checks the clamped
// [0,100] invariant.
func TestAssessScoreRange(t *testing.T) {
	for clouds := 0.0; clouds <= 100; clouds += 10 {
		for humidity := 0.0; humidity <= 100; humidity += 10 {
			for _, wind := range []float64{0, 4, 5, 15, 16, 50} {
				for _, vis := range []float64{0, 4.9, 5, 7.9, 8, 20} {
					for _, precip := range []float64{0, 1} {
						a := Assess(reading(clouds, humidity, wind, vis, precip))
						if a.Score < 0 || a.Score > 100 {
							t.Fatalf("score %d out of range for clouds=%v humidity=%v wind=%v vis=%v precip=%v",
								a.Score, clouds, humidity, wind, vis, precip)
						}
					}
				}
			}
		}
	}
}

// TestAssessCloudMonotonicity checks that more cloud cover never raises the
// score, all else fixed.
func TestAssessCloudMonotonicity(t *testing.T) {
	prev := 101
	for clouds := 0.0; clouds <= 100; clouds++ {
		a := Assess(reading(clouds, 60, 0, 10, 0))
		if a.Score > prev {
			t.Fatalf("score increased from %d to %d at cloud cover %v", prev, a.Score, clouds)
		}
		prev = a.Score
	}
}

func TestAssessDefaults(t *testing.T) {
	// Empty reading takes the documented defaults: clouds 50 (-20),
	// humidity 60 (0), wind 5 (+5), visibility 10 (0), precip 0 (0).
	a := Assess(Reading{})
	if a.Score != 85 {
		t.Fatalf("expected default-reading score 85, got %d", a.Score)
	}
	if a.Rating != RatingExcellent {
		t.Fatalf("expected rating %s, got %s", RatingExcellent, a.Rating)
	}
}

func TestAssessIdempotent(t *testing.T) {
	r := reading(35, 72, 12, 6, 0)
	first := Assess(r)
	second := Assess(r)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assessments differ: %+v vs %+v", first, second)
	}
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		score int
		want  Rating
	}{
		{100, RatingExcellent},
		{80, RatingExcellent},
		{79, RatingGood},
		{65, RatingGood},
		{64, RatingFair},
		{45, RatingFair},
		{44, RatingPoor},
		{0, RatingPoor},
	}

	for _, tt := range tests {
		if got := RatingFor(tt.score); got != tt.want {
			t.Errorf("RatingFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// TestAssessClampsOutOfRange documents the clamp-inside policy: values
// outside their ranges are pulled into range rather than rejected.
func TestAssessClampsOutOfRange(t *testing.T) {
	a := Assess(Reading{
		CloudCoverPct: Float(150), // clamped to 100
		HumidityPct:   Float(-5),  // clamped to 0
		VisibilityKm:  Float(-1),  // clamped to 0
		WindSpeedKmh:  Float(0),
		PrecipMm:      Float(0),
	})
	// 100 - 50 (clouds) - 20 (visibility) = 30.
	if a.Score != 30 {
		t.Fatalf("expected score 30, got %d", a.Score)
	}
}

func TestReadingValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Reading
		wantErr bool
	}{
		{"empty reading", Reading{}, false},
		{"valid reading", reading(20, 65, 5, 10, 0), false},
		{"negative visibility", Reading{VisibilityKm: Float(-2)}, true},
		{"humidity above 100", Reading{HumidityPct: Float(120)}, true},
		{"negative precip", Reading{PrecipMm: Float(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
