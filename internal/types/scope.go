package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// funcState is the state shared by every scope of one function body:
// the register counter, the labels and the inner value names in use.
type funcState struct {
	register uint64
	labels   mapset.Set
	names    mapset.Set
}

// BlockState is one lexical block of a function body.
// Blocks form a tree rooted at the function body. Each block owns its
// local value bindings; registers, labels and inner names are shared by
// the whole tree, so a write through any block is seen by all of them.
type BlockState struct {
	parent   *BlockState
	children []*BlockState
	values   map[string]*Value
	fn       *funcState
	comment  string // debugging comment (e.g., "function main", "loop")
}

// NewBlockState creates a block with the given parent.
// A nil parent starts a new function body with fresh shared state.
func NewBlockState(parent *BlockState, comment string) *BlockState {
	s := &BlockState{
		parent:  parent,
		values:  make(map[string]*Value),
		comment: comment,
	}
	if parent != nil {
		s.fn = parent.fn
		parent.children = append(parent.children, s)
	} else {
		s.fn = &funcState{
			labels: mapset.NewThreadUnsafeSet(),
			names:  mapset.NewThreadUnsafeSet(),
		}
	}
	return s
}

// Parent returns the enclosing block, or nil for a function body.
func (s *BlockState) Parent() *BlockState {
	return s.parent
}

// Children returns the nested blocks in creation order.
func (s *BlockState) Children() []*BlockState {
	return s.children
}

// Comment returns the block's comment (for debugging).
func (s *BlockState) Comment() string {
	return s.comment
}

// ----------------------------------------------------------------------------
// Values

// GetValue returns the binding of name visible from this block,
// searching the enclosing blocks outwards. It returns nil on a miss.
func (s *BlockState) GetValue(name string) *Value {
	for b := s; b != nil; b = b.parent {
		if v, ok := b.values[name]; ok {
			return v
		}
	}
	return nil
}

// LocalValue returns the binding of name declared in this block only.
func (s *BlockState) LocalValue(name string) *Value {
	return s.values[name]
}

// SetValue binds name in this block, shadowing outer bindings.
func (s *BlockState) SetValue(name string, v *Value) {
	s.values[name] = v
}

// ValueNames returns the names bound in this block, sorted.
func (s *BlockState) ValueNames() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ----------------------------------------------------------------------------
// Registers

// IncRegister allocates the next register of the function and returns it.
func (s *BlockState) IncRegister() uint64 {
	s.fn.register++
	return s.fn.register
}

// SetRegister sets the function's register counter.
func (s *BlockState) SetRegister(n uint64) {
	s.fn.register = n
}

// Register returns the last allocated register of the function.
func (s *BlockState) Register() uint64 {
	return s.fn.register
}

// ----------------------------------------------------------------------------
// Inner names

// SetInnerValueName records name as used anywhere in the function.
func (s *BlockState) SetInnerValueName(name string) {
	s.fn.names.Add(name)
}

// HasInnerValueName reports whether name is used anywhere in the function.
func (s *BlockState) HasInnerValueName(name string) bool {
	return s.fn.names.Contains(name)
}

// GetNextInnerName derives a storage name for base that is not yet used
// in the function. The result always carries a numeric suffix (x.0, x.1,
// ...), so it is only meaningful once base is known to collide. The
// result is not recorded.
func (s *BlockState) GetNextInnerName(base string) string {
	return nextName(s.fn.names, base)
}

// InnerNames returns every inner name of the function, sorted.
func (s *BlockState) InnerNames() []string {
	return sortedSet(s.fn.names)
}

// ----------------------------------------------------------------------------
// Labels

// SetLabel records label as used in the function.
func (s *BlockState) SetLabel(label string) {
	s.fn.labels.Add(label)
}

// SetAndGetLabel records and returns a function-unique label for base.
// The first use of base is returned verbatim; later uses yield base.0,
// base.1, and so on.
func (s *BlockState) SetAndGetLabel(base string) string {
	label := base
	if s.fn.labels.Contains(label) {
		label = nextName(s.fn.labels, base)
	}
	s.SetLabel(label)
	return label
}

// Labels returns every label of the function, sorted.
func (s *BlockState) Labels() []string {
	return sortedSet(s.fn.labels)
}

// nextName bumps the numeric suffix of base until the result is not in used.
func nextName(used mapset.Set, base string) string {
	for {
		candidate := bumpSuffix(base)
		if !used.Contains(candidate) {
			return candidate
		}
		base = candidate
	}
}

// bumpSuffix increments the numeric suffix after the last '.' of name,
// or appends ".0" if there is none.
func bumpSuffix(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		if n, err := strconv.ParseUint(name[i+1:], 10, 64); err == nil {
			return name[:i+1] + strconv.FormatUint(n+1, 10)
		}
	}
	return name + ".0"
}

// ----------------------------------------------------------------------------
// Debugging

// String returns a string representation of the block tree for debugging.
func (s *BlockState) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *BlockState) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sblock %s {\n", prefix, s.comment)
	for _, name := range s.ValueNames() {
		fmt.Fprintf(buf, "%s  %s -> %s\n", prefix, name, s.values[name])
	}
	for _, child := range s.children {
		child.writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}
