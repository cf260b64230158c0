package strategy

import (
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/lox/tripledraw/internal/fileutil"
)

// File is the persisted form of one or more strategy sets:
//
//	strategy "six-max" {
//	  position "UTG" {
//	    pat { include = ["8s+"] }
//	    draw1 {
//	      include = ["8654+"]
//	      exclude = ["4567"]
//	    }
//	  }
//	  position "HJ" {
//	    inherits_from = "UTG"
//	    draw1 { include = ["8743+"] }
//	  }
//	}
type File struct {
	Strategies []SetBlock `hcl:"strategy,block"`
}

// SetBlock is a strategy block
type SetBlock struct {
	Name         string          `hcl:"name,label"`
	BlockerRules bool            `hcl:"blocker_rules,optional"`
	Positions    []PositionBlock `hcl:"position,block"`
}

// PositionBlock is a position block. Missing range blocks are empty.
type PositionBlock struct {
	Name         string      `hcl:"name,label"`
	InheritsFrom string      `hcl:"inherits_from,optional"`
	Pat          *RangeBlock `hcl:"pat,block"`
	Draw1        *RangeBlock `hcl:"draw1,block"`
	Draw2        *RangeBlock `hcl:"draw2,block"`
	Draw3        *RangeBlock `hcl:"draw3,block"`
	Draw4        *RangeBlock `hcl:"draw4,block"`
}

// RangeBlock holds include and exclude notation lists
type RangeBlock struct {
	Include []string `hcl:"include,optional"`
	Exclude []string `hcl:"exclude,optional"`
}

func (p *PositionBlock) blocks() [numCategories]**RangeBlock {
	return [numCategories]**RangeBlock{&p.Pat, &p.Draw1, &p.Draw2, &p.Draw3, &p.Draw4}
}

// Build converts the block into a validated Set. With strict set, range
// entries outside the notation grammar are rejected instead of being kept
// as never-matching literals.
func (b SetBlock) Build(strict bool) (*Set, error) {
	positions := make([]PositionStrategy, 0, len(b.Positions))
	for _, pb := range b.Positions {
		ps := PositionStrategy{Position: pb.Name, InheritsFrom: pb.InheritsFrom}
		for c, rb := range pb.blocks() {
			if *rb != nil {
				ps.Ranges[c] = Range{
					Includes: slices.Clone((*rb).Include),
					Excludes: slices.Clone((*rb).Exclude),
				}
			}
		}
		positions = append(positions, ps)
	}

	set, err := NewSet(b.Name, b.BlockerRules, positions...)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", b.Name, err)
	}
	if strict {
		if err := set.ValidateNotation(); err != nil {
			return nil, fmt.Errorf("strategy %q: %w", b.Name, err)
		}
	}
	return set, nil
}

// BlockFromSet converts a Set back into its persisted form
func BlockFromSet(s *Set) SetBlock {
	b := SetBlock{Name: s.Name, BlockerRules: s.BlockerRules}
	for _, p := range s.positions {
		pb := PositionBlock{Name: p.Position, InheritsFrom: p.InheritsFrom}
		for c, rb := range pb.blocks() {
			r := p.Ranges[c]
			if r.IsEmpty() {
				continue
			}
			*rb = &RangeBlock{
				Include: append([]string{}, r.Includes...),
				Exclude: append([]string{}, r.Excludes...),
			}
		}
		b.Positions = append(b.Positions, pb)
	}
	return b
}

// BuildAll converts every block, failing on the first invalid set
func BuildAll(blocks []SetBlock, strict bool) ([]*Set, error) {
	sets := make([]*Set, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if seen[b.Name] {
			return nil, fmt.Errorf("strategy %q declared twice", b.Name)
		}
		seen[b.Name] = true
		s, err := b.Build(strict)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// Parse decodes strategy sets from HCL source
func Parse(src []byte, filename string, strict bool) ([]*Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file, strict)
}

// LoadFile reads strategy sets from an HCL file
func LoadFile(filename string, strict bool) ([]*Set, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy file: %w", err)
	}
	return Parse(src, filename, strict)
}

func decode(file *hcl.File, strict bool) ([]*Set, error) {
	var f File
	diags := gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return BuildAll(f.Strategies, strict)
}

// Encode renders sets as HCL
func Encode(sets ...*Set) []byte {
	f := File{}
	for _, s := range sets {
		f.Strategies = append(f.Strategies, BlockFromSet(s))
	}
	out := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&f, out.Body())
	return hclwrite.Format(out.Bytes())
}

// WriteFile exports sets to filename atomically
func WriteFile(filename string, sets ...*Set) error {
	if err := fileutil.WriteFileAtomic(filename, Encode(sets...), 0o644); err != nil {
		return fmt.Errorf("failed to export strategies: %w", err)
	}
	return nil
}
