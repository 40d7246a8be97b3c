package interval

import (
	"reflect"
	"testing"
)

func TestSize(t *testing.T) {
	iv := Interval{Start: 100, End: 199}
	if got := iv.Size(); got != 100 {
		t.Fatalf("Size() = %d, want 100", got)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		iv      Interval
		maxSize uint64
		want    []Interval
	}{
		{
			name:    "fits in one chunk",
			iv:      Interval{Start: 0, End: 9},
			maxSize: 100,
			want:    []Interval{{Start: 0, End: 9}},
		},
		{
			name:    "even split",
			iv:      Interval{Start: 0, End: 199},
			maxSize: 100,
			want:    []Interval{{Start: 0, End: 99}, {Start: 100, End: 199}},
		},
		{
			name:    "uneven tail",
			iv:      Interval{Start: 9001, End: 10050},
			maxSize: 100,
			want: []Interval{
				{Start: 9001, End: 9100}, {Start: 9101, End: 9200},
				{Start: 9201, End: 9300}, {Start: 9301, End: 9400},
				{Start: 9401, End: 9500}, {Start: 9501, End: 9600},
				{Start: 9601, End: 9700}, {Start: 9701, End: 9800},
				{Start: 9801, End: 9900}, {Start: 9901, End: 10000},
				{Start: 10001, End: 10050},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.iv.Split(tt.maxSize)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Split() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGaps(t *testing.T) {
	tests := []struct {
		name      string
		iv        Interval
		confirmed []uint64
		want      []Interval
	}{
		{
			name:      "empty confirmed list is one whole gap",
			iv:        Interval{Start: 1000, End: 1099},
			confirmed: nil,
			want:      []Interval{{Start: 1000, End: 1099}},
		},
		{
			name:      "worker scan scenario",
			iv:        Interval{Start: 1000, End: 1099},
			confirmed: []uint64{1000, 1001, 1050, 1099},
			want:      []Interval{{Start: 1002, End: 1049}, {Start: 1051, End: 1098}},
		},
		{
			name:      "all confirmed leaves no gaps",
			iv:        Interval{Start: 5, End: 7},
			confirmed: []uint64{5, 6, 7},
			want:      nil,
		},
		{
			name:      "single slot confirmed",
			iv:        Interval{Start: 42, End: 42},
			confirmed: []uint64{42},
			want:      nil,
		},
		{
			name:      "confirmed only at the edges",
			iv:        Interval{Start: 0, End: 10},
			confirmed: []uint64{0, 10},
			want:      []Interval{{Start: 1, End: 9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gaps(tt.iv, tt.confirmed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Gaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGapScanRoundTrip checks spec's law: the disjoint union of confirmed and the
// gaps reconstructs the original interval exactly.
func TestGapScanRoundTrip(t *testing.T) {
	iv := Interval{Start: 1000, End: 1099}
	confirmed := []uint64{1000, 1001, 1050, 1099}

	covered := map[uint64]bool{}
	for _, c := range confirmed {
		covered[c] = true
	}
	for _, g := range Gaps(iv, confirmed) {
		for s := g.Start; s <= g.End; s++ {
			if covered[s] {
				t.Fatalf("slot %d covered by both confirmed and a gap", s)
			}
			covered[s] = true
		}
	}
	for s := iv.Start; s <= iv.End; s++ {
		if !covered[s] {
			t.Fatalf("slot %d not covered by confirmed or any gap", s)
		}
	}
}
