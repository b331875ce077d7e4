package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldKind is the schema type of an indexed JSONPath.
type FieldKind string

// Supported field kinds.
const (
	FieldText   FieldKind = "TEXT"
	FieldTag    FieldKind = "TAG"
	FieldVector FieldKind = "VECTOR"
)

// Distance is the metric of a VECTOR field.
type Distance string

// Supported distances.
const (
	DistanceCosine Distance = "COSINE"
	DistanceL2     Distance = "L2"
)

// HNSW tunes the graph of a vector field. Zero values keep the server defaults.
type HNSW struct {
	M           int
	EFConstruct int
}

// Field is one JSONPath of an index schema, queried through Alias.
type Field struct {
	Path  string
	Alias string
	Kind  FieldKind

	// VECTOR only.
	Dim      int
	Distance Distance
	HNSW     HNSW
}

// IndexDefinition is an FT index over the JSON documents under Prefixes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []Field
}

// Validate rejects definitions FT.CREATE would refuse or misread.
func (d *IndexDefinition) Validate() error {
	if !validIndexName(d.Name) {
		return fmt.Errorf("invalid index name %q", d.Name)
	}
	if len(d.Fields) == 0 {
		return errors.New("index has no fields")
	}
	aliases := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if !strings.HasPrefix(f.Path, "$") {
			return fmt.Errorf("field %q is not a JSONPath", f.Path)
		}
		if f.Alias == "" {
			return fmt.Errorf("field %s has no alias", f.Path)
		}
		if _, dup := aliases[f.Alias]; dup {
			return fmt.Errorf("duplicate alias %q", f.Alias)
		}
		aliases[f.Alias] = struct{}{}

		switch f.Kind {
		case FieldText, FieldTag:
		case FieldVector:
			if f.Dim <= 0 {
				return fmt.Errorf("vector field %s needs a positive dimension", f.Alias)
			}
		default:
			return fmt.Errorf("field %s has unknown kind %q", f.Alias, f.Kind)
		}
	}
	return nil
}

// Args renders the FT.CREATE arguments that follow the command name.
func (d *IndexDefinition) Args() []string {
	args := []string{d.Name, "ON", "JSON"}
	if len(d.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(d.Prefixes)))
		args = append(args, d.Prefixes...)
	}
	args = append(args, "SCHEMA")
	for _, f := range d.Fields {
		args = append(args, f.Path, "AS", f.Alias, string(f.Kind))
		if f.Kind == FieldVector {
			args = append(args, vectorArgs(f)...)
		}
	}
	return args
}

func (d *IndexDefinition) String() string {
	return "FT.CREATE " + strings.Join(d.Args(), " ")
}

// vectorArgs always declares HNSW with FLOAT32 components.
func vectorArgs(f Field) []string {
	distance := f.Distance
	if distance == "" {
		distance = DistanceCosine
	}
	attrs := []string{
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(f.Dim),
		"DISTANCE_METRIC", string(distance),
	}
	if f.HNSW.M > 0 {
		attrs = append(attrs, "M", strconv.Itoa(f.HNSW.M))
	}
	if f.HNSW.EFConstruct > 0 {
		attrs = append(attrs, "EF_CONSTRUCTION", strconv.Itoa(f.HNSW.EFConstruct))
	}
	return append([]string{"HNSW", strconv.Itoa(len(attrs))}, attrs...)
}

// validIndexName matches [A-Za-z0-9_:-]+.
func validIndexName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == ':', r == '-':
		default:
			return false
		}
	}
	return true
}

// Builder assembles an IndexDefinition field by field.
type Builder struct {
	def IndexDefinition
}

// NewIndex starts a definition for the documents under prefixes.
func NewIndex(name string, prefixes ...string) *Builder {
	return &Builder{def: IndexDefinition{Name: name, Prefixes: prefixes}}
}

// Text adds a full-text field.
func (b *Builder) Text(path, alias string) *Builder {
	b.def.Fields = append(b.def.Fields, Field{Path: path, Alias: alias, Kind: FieldText})
	return b
}

// Tag adds an exact-match field.
func (b *Builder) Tag(path, alias string) *Builder {
	b.def.Fields = append(b.def.Fields, Field{Path: path, Alias: alias, Kind: FieldTag})
	return b
}

// Vector adds an HNSW vector field.
func (b *Builder) Vector(path, alias string, dim int, distance Distance, hnsw HNSW) *Builder {
	b.def.Fields = append(b.def.Fields, Field{
		Path:     path,
		Alias:    alias,
		Kind:     FieldVector,
		Dim:      dim,
		Distance: distance,
		HNSW:     hnsw,
	})
	return b
}

// Build validates and returns the definition.
func (b *Builder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	return &def, nil
}
