package planner

import (
	"errors"
	"testing"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name     string
		images   int
		target   int
		want     Distribution
		wantErr  error
		wantSkip bool
	}{
		{
			name:   "three images to a thousand",
			images: 3,
			target: 1000,
			want:   Distribution{ImageCount: 3, Target: 1000, CopiesPerImage: 333, AdditionalCopies: 1},
		},
		{
			name:   "even split",
			images: 4,
			target: 1000,
			want:   Distribution{ImageCount: 4, Target: 1000, CopiesPerImage: 250},
		},
		{
			name:   "ratio rounds up but floor is used",
			images: 600,
			target: 1000,
			want:   Distribution{ImageCount: 600, Target: 1000, CopiesPerImage: 1, AdditionalCopies: 400},
		},
		{
			name:   "one image",
			images: 1,
			target: 1000,
			want:   Distribution{ImageCount: 1, Target: 1000, CopiesPerImage: 1000},
		},
		{
			name:   "images equal target",
			images: 1000,
			target: 1000,
			want:   Distribution{ImageCount: 1000, Target: 1000, CopiesPerImage: 1},
		},
		{
			name:     "more images than target",
			images:   1200,
			target:   1000,
			want:     Distribution{ImageCount: 1200, Target: 1000, NoCopiesNeeded: true},
			wantSkip: true,
		},
		{
			name:    "no images",
			images:  0,
			target:  1000,
			wantErr: ErrNoImages,
		},
		{
			name:    "zero target",
			images:  3,
			target:  0,
			wantErr: ErrInvalidTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distribute(tt.images, tt.target)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Distribute(%d, %d) error = %v, want %v", tt.images, tt.target, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Distribute(%d, %d) unexpected error: %v", tt.images, tt.target, err)
			}
			if got != tt.want {
				t.Errorf("Distribute(%d, %d) = %+v, want %+v", tt.images, tt.target, got, tt.want)
			}
			if got.NoCopiesNeeded != tt.wantSkip {
				t.Errorf("NoCopiesNeeded = %v, want %v", got.NoCopiesNeeded, tt.wantSkip)
			}
		})
	}
}

func TestDistribute_SumInvariant(t *testing.T) {
	for _, target := range []int{1, 7, 100, 999, 1000, 1001} {
		for n := 1; n <= target; n++ {
			d, err := Distribute(n, target)
			if err != nil {
				t.Fatalf("Distribute(%d, %d): %v", n, target, err)
			}
			if d.CopiesPerImage*n+d.AdditionalCopies != target {
				t.Fatalf("Distribute(%d, %d) = %+v does not sum to target", n, target, d)
			}
			if d.AdditionalCopies < 0 || d.AdditionalCopies >= n {
				t.Fatalf("Distribute(%d, %d) remainder %d out of range", n, target, d.AdditionalCopies)
			}
			if d.Total() != target {
				t.Fatalf("Total() = %d, want %d", d.Total(), target)
			}

			sum := 0
			for i := 0; i < n; i++ {
				sum += d.CopiesFor(i)
			}
			if sum != target {
				t.Fatalf("CopiesFor sums to %d, want %d (n=%d)", sum, target, n)
			}
		}
	}
}

func TestDistribution_CopiesFor(t *testing.T) {
	d, err := Distribute(3, 1000)
	if err != nil {
		t.Fatal(err)
	}

	want := []int{334, 333, 333}
	for i, w := range want {
		if got := d.CopiesFor(i); got != w {
			t.Errorf("CopiesFor(%d) = %d, want %d", i, got, w)
		}
	}
	if got := d.CopiesFor(3); got != 0 {
		t.Errorf("CopiesFor(out of range) = %d, want 0", got)
	}
	if got := d.CopiesFor(-1); got != 0 {
		t.Errorf("CopiesFor(-1) = %d, want 0", got)
	}
}
