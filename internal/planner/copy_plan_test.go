package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/imgdup/internal/fsops"
	"github.com/danieljhkim/imgdup/internal/images"
)

func testImages(names ...string) []images.Image {
	imgs := make([]images.Image, 0, len(names))
	for _, name := range names {
		imgs = append(imgs, images.Image{
			Name: name,
			Path: filepath.Join("/src", name),
			Ext:  images.OutputExt(name),
		})
	}
	return imgs
}

func TestBuildCopyPlan_ThreeImagesToThousand(t *testing.T) {
	outDir := t.TempDir()
	imgs := testImages("a.jpg", "b.jpeg", "c.JPG")

	dist, err := Distribute(len(imgs), 1000)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := BuildCopyPlan(imgs, dist, outDir, nil, fsops.NewRealFS(), false)
	if err != nil {
		t.Fatalf("BuildCopyPlan failed: %v", err)
	}
	if plan.HasConflicts() {
		t.Fatalf("unexpected conflicts: %v", plan.Conflicts)
	}
	if plan.Total() != 1000 {
		t.Fatalf("Total() = %d, want 1000", plan.Total())
	}

	perImage := map[string]int{}
	extras := 0
	seen := map[string]bool{}
	for i, op := range plan.Operations {
		if op.Index != i+1 {
			t.Fatalf("operation %d has index %d", i, op.Index)
		}
		name := filepath.Base(op.DestPath)
		if seen[name] {
			t.Fatalf("duplicate destination %s", name)
		}
		seen[name] = true
		perImage[op.Image]++
		if op.Extra {
			extras++
		}
	}

	if perImage["a.jpg"] != 334 || perImage["b.jpeg"] != 333 || perImage["c.JPG"] != 333 {
		t.Errorf("unexpected per-image counts: %v", perImage)
	}
	if extras != 1 {
		t.Errorf("extras = %d, want 1", extras)
	}

	// Main pass is image-major; the single extra copy goes to the first image.
	if got := plan.Operations[333].Image; got != "b.jpeg" {
		t.Errorf("operation 334 copies %s, want b.jpeg", got)
	}
	last := plan.Operations[999]
	if last.Image != "a.jpg" || !last.Extra || filepath.Base(last.DestPath) != "1000.jpg" {
		t.Errorf("unexpected last operation: %+v", last)
	}
	if got := filepath.Base(plan.Operations[333].DestPath); got != "334.jpeg" {
		t.Errorf("jpeg source written as %s, want 334.jpeg", got)
	}
}

func TestBuildCopyPlan_NoCopiesNeeded(t *testing.T) {
	names := make([]string, 5)
	for i := range names {
		names[i] = fmt.Sprintf("img%d.jpg", i)
	}
	imgs := testImages(names...)

	dist, err := Distribute(len(imgs), 3)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := BuildCopyPlan(imgs, dist, "/out", nil, fsops.NewRealFS(), false)
	if err != nil {
		t.Fatalf("BuildCopyPlan failed: %v", err)
	}
	if !plan.Distribution.NoCopiesNeeded {
		t.Error("expected NoCopiesNeeded")
	}
	if plan.Total() != 0 {
		t.Errorf("Total() = %d, want 0", plan.Total())
	}
}

func TestBuildCopyPlan_Conflicts(t *testing.T) {
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "2.jpg"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	imgs := testImages("a.jpg")
	dist, _ := Distribute(1, 3)

	t.Run("without force", func(t *testing.T) {
		plan, err := BuildCopyPlan(imgs, dist, outDir, nil, fsops.NewRealFS(), false)
		if err != nil {
			t.Fatal(err)
		}
		if len(plan.Conflicts) != 1 {
			t.Fatalf("expected 1 conflict, got %v", plan.Conflicts)
		}
		if plan.Conflicts[0].Path != filepath.Join(outDir, "2.jpg") {
			t.Errorf("conflict path = %s", plan.Conflicts[0].Path)
		}
		if plan.Total() != 3 {
			t.Errorf("Total() = %d, want 3", plan.Total())
		}
	})

	t.Run("with force", func(t *testing.T) {
		plan, err := BuildCopyPlan(imgs, dist, outDir, nil, fsops.NewRealFS(), true)
		if err != nil {
			t.Fatal(err)
		}
		if plan.HasConflicts() {
			t.Errorf("unexpected conflicts with force: %v", plan.Conflicts)
		}
	})
}

func TestBuildCopyPlan_SiblingExtensions(t *testing.T) {
	outDir := t.TempDir()
	for _, name := range []string{"2.jpeg", "3.png"} {
		if err := os.WriteFile(filepath.Join(outDir, name), []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	imgs := testImages("a.jpg")
	dist, _ := Distribute(1, 3)
	exts := []string{".jpg", ".png"}

	t.Run("without force", func(t *testing.T) {
		plan, err := BuildCopyPlan(imgs, dist, outDir, exts, fsops.NewRealFS(), false)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{filepath.Join(outDir, "2.jpeg"), filepath.Join(outDir, "3.png")}
		if len(plan.Conflicts) != len(want) {
			t.Fatalf("expected %d conflicts, got %v", len(want), plan.Conflicts)
		}
		for i, c := range plan.Conflicts {
			if c.Path != want[i] {
				t.Errorf("conflict %d path = %s, want %s", i, c.Path, want[i])
			}
		}
	})

	t.Run("with force", func(t *testing.T) {
		plan, err := BuildCopyPlan(imgs, dist, outDir, exts, fsops.NewRealFS(), true)
		if err != nil {
			t.Fatal(err)
		}
		if plan.HasConflicts() {
			t.Fatalf("unexpected conflicts with force: %v", plan.Conflicts)
		}
		if got := plan.Operations[1].Replace; len(got) != 1 || got[0] != filepath.Join(outDir, "2.jpeg") {
			t.Errorf("op 2 Replace = %v", got)
		}
		if got := plan.Operations[0].Replace; len(got) != 0 {
			t.Errorf("op 1 Replace = %v, want none", got)
		}
	})

	t.Run("directory sibling always conflicts", func(t *testing.T) {
		dirOut := t.TempDir()
		if err := os.Mkdir(filepath.Join(dirOut, "1.jpeg"), 0755); err != nil {
			t.Fatal(err)
		}
		plan, err := BuildCopyPlan(imgs, dist, dirOut, nil, fsops.NewRealFS(), true)
		if err != nil {
			t.Fatal(err)
		}
		if len(plan.Conflicts) != 1 {
			t.Errorf("expected 1 conflict, got %v", plan.Conflicts)
		}
	})
}

func TestBuildCopyPlan_MismatchedDistribution(t *testing.T) {
	dist, _ := Distribute(2, 10)
	if _, err := BuildCopyPlan(testImages("a.jpg"), dist, "/out", nil, fsops.NewRealFS(), false); err == nil {
		t.Error("expected error for mismatched distribution")
	}
}
