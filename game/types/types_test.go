package types

import (
	"errors"
	"image"
	"testing"
)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name       string
		w, h, cs   int
		wantErr    error
		wantWidth  int
		wantHeight int
	}{
		{name: "reference display", w: 230, h: 300, cs: 4, wantWidth: 57, wantHeight: 75},
		{name: "remainder is padding", w: 43, h: 41, cs: 4, wantWidth: 10, wantHeight: 10},
		{name: "smallest plan", w: 3, h: 3, cs: 1, wantWidth: 3, wantHeight: 3},
		{name: "too narrow", w: 8, h: 40, cs: 4, wantErr: ErrPlanTooSmall},
		{name: "too short", w: 40, h: 11, cs: 4, wantErr: ErrPlanTooSmall},
		{name: "zero cell size", w: 40, h: 40, cs: 0, wantErr: ErrInvalidCellSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(5, 15, tt.w, tt.h, tt.cs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Width() != tt.wantWidth || p.Height() != tt.wantHeight {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantWidth, tt.wantHeight, p.Width(), p.Height())
			}
		})
	}
}

func TestToPixel(t *testing.T) {
	p, err := NewPlan(5, 15, 230, 300, 4)
	if err != nil {
		t.Fatal(err)
	}

	got := p.ToPixel(Cell{X: 2, Y: 3})
	want := image.Rect(13, 27, 17, 31)
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if b := p.Bounds(); b != image.Rect(5, 15, 5+57*4, 15+75*4) {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestInterior(t *testing.T) {
	p, err := NewPlan(0, 0, 40, 40, 1)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		cell Cell
		want bool
	}{
		{Cell{X: 0, Y: 10}, false},
		{Cell{X: 39, Y: 10}, false},
		{Cell{X: 10, Y: 0}, false},
		{Cell{X: 10, Y: 39}, false},
		{Cell{X: 1, Y: 1}, true},
		{Cell{X: 38, Y: 38}, true},
		{Cell{X: -1, Y: 5}, false},
	}
	for _, tt := range tests {
		if got := p.Interior(tt.cell); got != tt.want {
			t.Errorf("Interior(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		index int
		turn  Turn
		want  int
	}{
		{0, Left, 3},
		{0, Right, 1},
		{3, Right, 0},
		{2, Straight, 2},
		{1, Left, 0},
	}
	for _, tt := range tests {
		if got := Rotate(tt.index, tt.turn); got != tt.want {
			t.Errorf("Rotate(%d, %v) = %d, want %d", tt.index, tt.turn, got, tt.want)
		}
	}
}

func TestBearingIndex(t *testing.T) {
	for i, b := range Bearings {
		if got := BearingIndex(b); got != i {
			t.Errorf("BearingIndex(%v) = %d, want %d", b, got, i)
		}
	}
	if got := BearingIndex(Cell{X: 1, Y: 1}); got != -1 {
		t.Errorf("expected -1 for a diagonal, got %d", got)
	}
}
