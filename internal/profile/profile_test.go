package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default profile failed: %v", err)
	}

	if p.Hero.Name != "SYAHRINDRA" {
		t.Errorf("expected hero name SYAHRINDRA, got %s", p.Hero.Name)
	}
	if len(p.Nav) != 5 {
		t.Errorf("expected 5 nav items, got %d", len(p.Nav))
	}
	if len(p.Tech) != 24 {
		t.Errorf("expected 24 tech icons, got %d", len(p.Tech))
	}
	if len(p.Experience) != 11 {
		t.Errorf("expected 11 experience entries, got %d", len(p.Experience))
	}
	if len(p.Certificates) != 15 {
		t.Errorf("expected 15 certificates, got %d", len(p.Certificates))
	}
	if p.Legendary.Tier != "LEGENDARY" {
		t.Errorf("expected legendary tier, got %s", p.Legendary.Tier)
	}
}

func TestDefault_ReturnsCopies(t *testing.T) {
	a, _ := Default()
	a.Nav[0].Label = "MUTATED"
	a.Certificates = a.Certificates[:1]

	b, _ := Default()
	if b.Nav[0].Label != "HOME" {
		t.Error("mutation leaked into shared profile")
	}
	if len(b.Certificates) != 15 {
		t.Error("slice truncation leaked into shared profile")
	}
}

func TestFilters(t *testing.T) {
	p, _ := Default()

	tests := []struct {
		typ      EntryType
		expected int
	}{
		{TypeWork, 2},
		{TypeOrg, 2},
		{TypeEvent, 2},
		{TypeCTF, 5},
	}
	for _, tt := range tests {
		if got := len(p.ExperienceByType(tt.typ)); got != tt.expected {
			t.Errorf("type %s: expected %d entries, got %d", tt.typ, tt.expected, got)
		}
	}

	if got := len(p.CertificatesByType(CertAI)); got != 6 {
		t.Errorf("expected 6 AI certificates, got %d", got)
	}
	counts := p.CountByRarity()
	if counts[RarityEpic] != 5 || counts[RarityRare] != 10 {
		t.Errorf("unexpected rarity counts %v", counts)
	}
	if p.Section("experience") != 3 || p.Section("missing") != -1 {
		t.Error("unexpected section lookup")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Profile)
	}{
		{"empty nav", func(p *Profile) { p.Nav = nil }},
		{"duplicate nav", func(p *Profile) { p.Nav[1].ID = p.Nav[0].ID }},
		{"missing experience id", func(p *Profile) { p.Experience[0].ID = "" }},
		{"unknown status", func(p *Profile) { p.Experience[0].Status = "PAUSED" }},
		{"unknown entry type", func(p *Profile) { p.Experience[0].Type = "HOBBY" }},
		{"duplicate certificate", func(p *Profile) { p.Certificates[2].ID = "C01" }},
		{"unknown rarity", func(p *Profile) { p.Certificates[0].Rarity = "MYTHIC" }},
		{"unknown cert type", func(p *Profile) { p.Certificates[0].Type = "CLOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := Default()
			tt.edit(p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	p, _ := Default()
	p.Hero.Name = "GHOST"

	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Hero.Name != "GHOST" {
		t.Errorf("expected GHOST, got %s", loaded.Hero.Name)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	os.WriteFile(path, []byte("hero:\n  name: X\n"), 0644)

	if _, err := Load(path); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
