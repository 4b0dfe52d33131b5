// Package profile holds the read-only portfolio data: hero, navigation,
// tech arsenal, featured project, experience log and certificate archive.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var embedded []byte

var ErrInvalidProfile = errors.New("profile: invalid data")

type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusAward     Status = "AWARD"
)

type EntryType string

const (
	TypeWork  EntryType = "WORK"
	TypeOrg   EntryType = "ORG"
	TypeEvent EntryType = "EVENT"
	TypeCTF   EntryType = "CTF"
)

type CertType string

const (
	CertAI         CertType = "AI"
	CertSecurity   CertType = "SECURITY"
	CertNetworking CertType = "NETWORKING"
	CertIoT        CertType = "IOT"
	CertData       CertType = "DATA"
)

type Rarity string

const (
	RarityEpic Rarity = "EPIC"
	RarityRare Rarity = "RARE"
)

type Hero struct {
	Name     string `yaml:"name" json:"name"`
	Surname  string `yaml:"surname" json:"surname"`
	Title    string `yaml:"title" json:"title"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	Email    string `yaml:"email" json:"email"`
	Location string `yaml:"location" json:"location"`
}

type NavItem struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"`
}

type Tech struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle"`
	Description string   `yaml:"description" json:"description"`
	Stack       []string `yaml:"stack" json:"stack"`
}

type Experience struct {
	ID           string    `yaml:"id" json:"id"`
	Role         string    `yaml:"role" json:"role"`
	Organization string    `yaml:"organization" json:"organization"`
	Period       string    `yaml:"period" json:"period"`
	Status       Status    `yaml:"status" json:"status"`
	Type         EntryType `yaml:"type" json:"type"`
}

type Legendary struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle"`
	Description string   `yaml:"description" json:"description"`
	Issuer      string   `yaml:"issuer" json:"issuer"`
	Tier        string   `yaml:"tier" json:"tier"`
	Stats       []string `yaml:"stats" json:"stats"`
}

type Certificate struct {
	ID     string   `yaml:"id" json:"id"`
	Title  string   `yaml:"title" json:"title"`
	Issuer string   `yaml:"issuer" json:"issuer"`
	Type   CertType `yaml:"type" json:"type"`
	Rarity Rarity   `yaml:"rarity" json:"rarity"`
}

type Profile struct {
	Hero         Hero          `yaml:"hero" json:"hero"`
	Nav          []NavItem     `yaml:"nav" json:"nav"`
	Tech         []Tech        `yaml:"tech" json:"tech"`
	Project      Project       `yaml:"project" json:"project"`
	Experience   []Experience  `yaml:"experience" json:"experience"`
	Legendary    Legendary     `yaml:"legendary" json:"legendary"`
	Certificates []Certificate `yaml:"certificates" json:"certificates"`
}

var (
	defaultOnce    sync.Once
	defaultProfile *Profile
	defaultErr     error
)

// Default returns a copy of the embedded profile.
func Default() (*Profile, error) {
	defaultOnce.Do(func() {
		defaultProfile, defaultErr = Parse(embedded)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultProfile.Clone(), nil
}

// Load reads a profile override from disk.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func (p *Profile) Validate() error {
	if len(p.Nav) == 0 {
		return fmt.Errorf("%w: empty navigation", ErrInvalidProfile)
	}
	if err := unique("nav", len(p.Nav), func(i int) string { return p.Nav[i].ID }); err != nil {
		return err
	}
	if err := unique("experience", len(p.Experience), func(i int) string { return p.Experience[i].ID }); err != nil {
		return err
	}
	if err := unique("certificate", len(p.Certificates), func(i int) string { return p.Certificates[i].ID }); err != nil {
		return err
	}

	for _, e := range p.Experience {
		switch e.Status {
		case StatusRunning, StatusActive, StatusCompleted, StatusAward:
		default:
			return fmt.Errorf("%w: experience %s has unknown status %q", ErrInvalidProfile, e.ID, e.Status)
		}
		switch e.Type {
		case TypeWork, TypeOrg, TypeEvent, TypeCTF:
		default:
			return fmt.Errorf("%w: experience %s has unknown type %q", ErrInvalidProfile, e.ID, e.Type)
		}
	}

	for _, c := range p.Certificates {
		switch c.Type {
		case CertAI, CertSecurity, CertNetworking, CertIoT, CertData:
		default:
			return fmt.Errorf("%w: certificate %s has unknown type %q", ErrInvalidProfile, c.ID, c.Type)
		}
		switch c.Rarity {
		case RarityEpic, RarityRare:
		default:
			return fmt.Errorf("%w: certificate %s has unknown rarity %q", ErrInvalidProfile, c.ID, c.Rarity)
		}
	}
	return nil
}

func unique(kind string, n int, id func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		k := id(i)
		if k == "" {
			return fmt.Errorf("%w: %s %d has no id", ErrInvalidProfile, kind, i)
		}
		if seen[k] {
			return fmt.Errorf("%w: duplicate %s id %s", ErrInvalidProfile, kind, k)
		}
		seen[k] = true
	}
	return nil
}

// Clone deep-copies the profile so callers cannot mutate shared data.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Nav = append([]NavItem(nil), p.Nav...)
	c.Tech = append([]Tech(nil), p.Tech...)
	c.Project.Stack = append([]string(nil), p.Project.Stack...)
	c.Experience = append([]Experience(nil), p.Experience...)
	c.Legendary.Stats = append([]string(nil), p.Legendary.Stats...)
	c.Certificates = append([]Certificate(nil), p.Certificates...)
	return &c
}

// Section returns the index of a navigation id, or -1.
func (p *Profile) Section(id string) int {
	for i, n := range p.Nav {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (p *Profile) ExperienceByType(t EntryType) []Experience {
	var out []Experience
	for _, e := range p.Experience {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (p *Profile) CertificatesByType(t CertType) []Certificate {
	var out []Certificate
	for _, c := range p.Certificates {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func (p *Profile) CountByRarity() map[Rarity]int {
	counts := make(map[Rarity]int)
	for _, c := range p.Certificates {
		counts[c.Rarity]++
	}
	return counts
}
