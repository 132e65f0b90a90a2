package keymap

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dshills/keyloom/internal/input/keysym"
)

// generationCounter mints a fresh generation for every successful
// compile, across all compilers.
var generationCounter atomic.Uint64

// Compiler turns layout descriptions into immutable Layouts.
type Compiler struct {
	schema *jsonschema.Schema
}

// NewCompiler creates a layout compiler backed by the embedded
// description schema.
func NewCompiler() *Compiler {
	return &Compiler{schema: layoutSchema}
}

// CompileFile compiles a layout description from a JSON file.
func (c *Compiler) CompileFile(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{Source: path, Detail: "reading layout file", Err: err}
	}
	return c.compileBytes(raw, path)
}

// CompileBytes compiles a layout description from raw JSON.
func (c *Compiler) CompileBytes(raw []byte) (*Layout, error) {
	return c.compileBytes(raw, "inline")
}

// Compile compiles an already decoded description.
func (c *Compiler) Compile(desc *Description) (*Layout, error) {
	return c.compile(desc, "description")
}

func (c *Compiler) compileBytes(raw []byte, source string) (*Layout, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &CompileError{Source: source, Detail: "description is not valid JSON", Err: err}
	}
	if err := c.schema.Validate(doc); err != nil {
		return nil, &CompileError{Source: source, Detail: "description does not match the layout schema", Err: err}
	}
	var desc Description
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, &CompileError{Source: source, Detail: "decoding description", Err: err}
	}
	return c.compile(&desc, source)
}

func (c *Compiler) compile(desc *Description, source string) (*Layout, error) {
	fail := func(detail string, err error) (*Layout, error) {
		return nil, &CompileError{Source: source, Detail: detail, Err: err}
	}

	if desc == nil || desc.Name == "" {
		return fail("layout needs a name", nil)
	}
	if len(desc.Modifiers) == 0 {
		return fail("layout needs a modifier table", nil)
	}
	if len(desc.Modifiers) > MaxModifiers {
		return fail(fmt.Sprintf("modifier table has %d entries, the limit is %d",
			len(desc.Modifiers), MaxModifiers), ErrTooManyModifiers)
	}
	if len(desc.Keys) == 0 {
		return fail("layout binds no keys", nil)
	}

	modNames := make([]string, len(desc.Modifiers))
	modIndex := make(map[string]ModIndex, len(desc.Modifiers))
	for i, name := range desc.Modifiers {
		lower := strings.ToLower(name)
		if _, dup := modIndex[lower]; dup {
			return fail(fmt.Sprintf("modifier %q appears twice in the table", name), nil)
		}
		modNames[i] = name
		modIndex[lower] = ModIndex(i)
	}
	modmap := buildModifierMap(modNames)

	types := make(map[string]*keyType, len(desc.Types))
	for name, td := range desc.Types {
		t, err := compileType(name, td, modIndex)
		if err != nil {
			return fail("types."+name, err)
		}
		types[name] = t
	}

	// Groups without an explicit type get the classic defaults:
	// single-level keys ignore modifiers, wider keys shift on Shift.
	oneLevel := &keyType{
		name:      "(one level)",
		levels:    map[Mods]int{},
		preserve:  map[Mods]Mods{},
		numLevels: 1,
	}
	shiftBit := lowestBit(modmap.Shift)
	twoLevel := &keyType{
		name:      "(two level)",
		mask:      shiftBit,
		levels:    map[Mods]int{shiftBit: 1},
		preserve:  map[Mods]Mods{},
		numLevels: 2,
	}

	keys := make(map[uint32]*compiledKey, len(desc.Keys))
	maxGroups := 1
	for kcStr, kd := range desc.Keys {
		kc64, err := strconv.ParseUint(kcStr, 10, 32)
		if err != nil {
			return fail(fmt.Sprintf("keys.%s: keycode is not numeric", kcStr), err)
		}
		if len(kd.Groups) == 0 {
			return fail(fmt.Sprintf("keys.%s: key declares no groups", kcStr), nil)
		}
		ck := &compiledKey{repeat: true}
		if kd.Repeat != nil {
			ck.repeat = *kd.Repeat
		}
		for gi, gd := range kd.Groups {
			grp, err := compileGroup(gd, types, oneLevel, twoLevel)
			if err != nil {
				return fail(fmt.Sprintf("keys.%s.groups[%d]", kcStr, gi), err)
			}
			ck.groups = append(ck.groups, grp)
		}
		if len(ck.groups) > maxGroups {
			maxGroups = len(ck.groups)
		}
		keys[uint32(kc64)] = ck
	}

	return &Layout{
		name:       desc.Name,
		id:         uuid.NewString(),
		generation: generationCounter.Add(1),
		modNames:   modNames,
		modIndex:   modIndex,
		modmap:     modmap,
		types:      types,
		keys:       keys,
		maxGroups:  maxGroups,
		reverse:    buildReverse(keys),
	}, nil
}

func compileType(name string, td TypeDesc, index map[string]ModIndex) (*keyType, error) {
	t := &keyType{
		name:      name,
		levels:    make(map[Mods]int, len(td.Map)),
		preserve:  make(map[Mods]Mods, len(td.Preserve)),
		numLevels: 1,
	}
	for _, mod := range td.Mask {
		i, ok := index[strings.ToLower(mod)]
		if !ok {
			return nil, fmt.Errorf("mask modifier %q is not in the modifier table", mod)
		}
		t.mask |= Bit(i)
	}
	for combo, level := range td.Map {
		mask, err := parseCombo(combo, index)
		if err != nil {
			return nil, err
		}
		if mask&^t.mask != 0 {
			return nil, fmt.Errorf("map combo %q uses modifiers outside the type mask", combo)
		}
		t.levels[mask] = level
		if level+1 > t.numLevels {
			t.numLevels = level + 1
		}
	}
	for combo, mods := range td.Preserve {
		mask, err := parseCombo(combo, index)
		if err != nil {
			return nil, err
		}
		var keep Mods
		for _, mod := range mods {
			i, ok := index[strings.ToLower(mod)]
			if !ok {
				return nil, fmt.Errorf("preserve modifier %q is not in the modifier table", mod)
			}
			keep |= Bit(i)
		}
		if keep&^t.mask != 0 {
			return nil, fmt.Errorf("preserve combo %q keeps modifiers outside the type mask", combo)
		}
		t.preserve[mask] = keep
	}
	return t, nil
}

func compileGroup(gd GroupDesc, types map[string]*keyType, oneLevel, twoLevel *keyType) (keyGroup, error) {
	var g keyGroup
	switch {
	case gd.Type != "":
		t, ok := types[gd.Type]
		if !ok {
			return g, fmt.Errorf("%w %q", ErrUnknownType, gd.Type)
		}
		g.typ = t
	case len(gd.Symbols) <= 1:
		g.typ = oneLevel
	default:
		g.typ = twoLevel
	}
	if len(gd.Symbols) == 0 {
		return g, fmt.Errorf("group has no symbol levels")
	}
	g.symbols = make([][]keysym.Symbol, len(gd.Symbols))
	for li, level := range gd.Symbols {
		syms := make([]keysym.Symbol, 0, len(level))
		for _, name := range level {
			s, err := keysym.ParseName(name)
			if err != nil {
				return g, fmt.Errorf("level %d: %w", li+1, err)
			}
			syms = append(syms, s)
		}
		g.symbols[li] = syms
	}
	return g, nil
}

// buildReverse indexes every symbol at its first position in keycode
// order, so interactive probes can synthesize transitions for text.
func buildReverse(keys map[uint32]*compiledKey) map[keysym.Symbol]KeyPosition {
	kcs := make([]uint32, 0, len(keys))
	for kc := range keys {
		kcs = append(kcs, kc)
	}
	sort.Slice(kcs, func(i, j int) bool { return kcs[i] < kcs[j] })

	reverse := make(map[keysym.Symbol]KeyPosition)
	for _, kc := range kcs {
		k := keys[kc]
		for gi, g := range k.groups {
			for li, syms := range g.symbols {
				for _, s := range syms {
					if s == keysym.None {
						continue
					}
					if _, seen := reverse[s]; seen {
						continue
					}
					reverse[s] = KeyPosition{
						Keycode: kc,
						Group:   int32(gi),
						Level:   li,
						Mods:    comboForLevel(g.typ, li),
					}
				}
			}
		}
	}
	return reverse
}

// comboForLevel picks the cheapest modifier combo that selects the
// level, favoring fewer held modifiers and then the lower mask.
func comboForLevel(t *keyType, level int) Mods {
	if level == 0 {
		return 0
	}
	var best Mods
	found := false
	for combo, lv := range t.levels {
		if lv != level {
			continue
		}
		switch {
		case !found:
			best, found = combo, true
		case bits.OnesCount32(uint32(combo)) < bits.OnesCount32(uint32(best)):
			best = combo
		case bits.OnesCount32(uint32(combo)) == bits.OnesCount32(uint32(best)) && combo < best:
			best = combo
		}
	}
	if !found {
		return 0
	}
	return best
}

func lowestBit(m Mods) Mods {
	return m & (^m + 1)
}
