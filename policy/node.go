// Package policy implements the monotone AND/OR access tree used by the
// KP-ABE scheme: leaf enumeration, Shamir secret splitting top-down, and
// Lagrange-coefficient-weighted satisfaction search bottom-up.
package policy

import (
	"fmt"

	"github.com/Nik-U/pbc"

	"github.com/census-labs/kpabe-core/internal/pairing"
)

// Gate identifies the threshold behavior of an inner node.
type Gate int

const (
	// OR is satisfied by any one child; threshold 1.
	OR Gate = iota
	// AND requires every child; threshold equals the child count.
	AND
)

func (g Gate) String() string {
	if g == AND {
		return "AND"
	}
	return "OR"
}

// Node is an immutable value: either a leaf carrying an attribute id, or an
// inner node with a gate and an ordered, non-empty sequence of children.
type Node struct {
	leaf     bool
	attr     int
	gate     Gate
	children []Node
}

// Leaf builds a policy leaf for the given attribute id.
func Leaf(attr int) Node {
	return Node{leaf: true, attr: attr}
}

// And builds an AND gate over the given children (threshold == len(children)).
func And(children ...Node) Node {
	return Node{gate: AND, children: children}
}

// Or builds an OR gate over the given children (threshold == 1).
func Or(children ...Node) Node {
	return Node{gate: OR, children: children}
}

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool { return n.leaf }

// Attr returns the leaf's attribute id. It is only meaningful when IsLeaf().
func (n Node) Attr() int { return n.attr }

// Children returns n's children in left-to-right order. Empty for a leaf.
func (n Node) Children() []Node { return n.children }

// Leafs returns every leaf attribute reachable from n, in depth-first,
// left-to-right order. Leaf attributes repeat in the output only if the
// tree itself contains duplicates (see Validate).
func (n Node) Leafs() []int {
	if n.leaf {
		return []int{n.attr}
	}
	attrs := make([]int, 0, len(n.children))
	for _, c := range n.children {
		attrs = append(attrs, c.Leafs()...)
	}
	return attrs
}

// Threshold returns 1 for an OR gate, or the child count for AND. A leaf's
// threshold is conventionally 1 (it is satisfied by itself alone).
func (n Node) Threshold() int {
	if n.leaf {
		return 1
	}
	if n.gate == OR {
		return 1
	}
	return len(n.children)
}

// PolyDegree is Threshold()-1, the degree of the Shamir polynomial used to
// split a secret across this node's children.
func (n Node) PolyDegree() int {
	return n.Threshold() - 1
}

// Validate rejects structurally invalid trees: inner nodes with no
// children, and duplicate leaf attributes anywhere in the tree (an
// implementation-defined case the source construction leaves undefined;
// this package rejects it outright rather than producing undefined shares).
func (n Node) Validate() error {
	if !n.leaf && len(n.children) == 0 {
		return fmt.Errorf("policy: inner node has no children")
	}
	for _, c := range n.children {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	seen := make(map[int]bool)
	for _, a := range n.Leafs() {
		if seen[a] {
			return fmt.Errorf("policy: duplicate leaf attribute %d", a)
		}
		seen[a] = true
	}
	return nil
}

// SplitShares realizes one level of Shamir secret sharing: it samples a
// random degree-PolyDegree() polynomial with q(0) = rootSecret and returns
// q(1), q(2), ..., q(len(children)) - one share per child, in order.
//
// x^k is evaluated by repeated Zr multiplication, never floating point, so
// the result is exact for any threshold.
func (n Node) SplitShares(rootSecret *pbc.Element) []*pbc.Element {
	p := pairing.Context()
	threshold := n.Threshold()

	coeffs := make([]*pbc.Element, threshold)
	coeffs[0] = p.NewZr().Set(rootSecret)
	for i := 1; i < threshold; i++ {
		coeffs[i] = p.NewZr().Rand()
	}

	shares := make([]*pbc.Element, len(n.children))
	for x := 1; x <= len(n.children); x++ {
		share := p.NewZr().Set0()
		xPow := p.NewZr().Set1()
		xElt := p.NewZr().SetInt32(int32(x))
		for power := 0; power < threshold; power++ {
			term := p.NewZr().Set(coeffs[power]).ThenMul(xPow)
			share.ThenAdd(term)
			if power+1 < threshold {
				xPow = p.NewZr().Set(xPow).ThenMul(xElt)
			}
		}
		shares[x-1] = share
	}
	return shares
}

// SecretShares performs the full top-down Shamir sharing over the tree: at
// a leaf it returns [rootSecret] unchanged; at an inner node it splits
// rootSecret across children via SplitShares and recurses. The result has
// one entry per leaf, in the same order as Leafs().
func (n Node) SecretShares(rootSecret *pbc.Element) []*pbc.Element {
	if n.leaf {
		return []*pbc.Element{rootSecret}
	}
	childShares := n.SplitShares(rootSecret)
	out := make([]*pbc.Element, 0, len(n.children))
	for i, c := range n.children {
		out = append(out, c.SecretShares(childShares[i])...)
	}
	return out
}

// RecoverCoefficients computes the Lagrange basis coefficients at 0 for the
// point set {1, ..., Threshold()}, i.e. lambda_i = prod_{j != i} (-j)/(i-j).
func (n Node) RecoverCoefficients() []*pbc.Element {
	p := pairing.Context()
	threshold := n.Threshold()
	coeffs := make([]*pbc.Element, threshold)

	for i := 1; i <= threshold; i++ {
		result := p.NewZr().Set1()
		iVal := p.NewZr().SetInt32(int32(i))
		for j := 1; j <= threshold; j++ {
			if i == j {
				continue
			}
			jVal := p.NewZr().SetInt32(int32(-j))
			denom := p.NewZr().Set(iVal).ThenAdd(jVal)
			term := p.NewZr().Set(jVal).ThenDiv(denom)
			result.ThenMul(term)
		}
		coeffs[i-1] = result
	}
	return coeffs
}

// AttrCoeff pairs a satisfying leaf attribute with its accumulated Lagrange
// coefficient along the root-to-leaf path that satisfied the tree.
type AttrCoeff struct {
	Attr  int
	Coeff *pbc.Element
}

// SatisfyingAttributes searches the tree for a subset of attrs that
// satisfies it, folding Lagrange coefficients along the accepted path. It
// returns one (attribute, coefficient) pair per leaf on the chosen
// satisfying path, or nil if attrs does not satisfy the tree.
func (n Node) SatisfyingAttributes(attrs map[int]bool, currentCoeff *pbc.Element) []AttrCoeff {
	p := pairing.Context()

	if n.leaf {
		if attrs[n.attr] {
			return []AttrCoeff{{Attr: n.attr, Coeff: currentCoeff}}
		}
		return nil
	}

	recCoeffs := n.RecoverCoefficients()

	if n.gate == AND {
		var total []AttrCoeff
		for i, c := range n.children {
			scrambled := p.NewZr().Set(recCoeffs[i]).ThenMul(currentCoeff)
			childSat := c.SatisfyingAttributes(attrs, scrambled)
			if childSat == nil {
				return nil
			}
			total = append(total, childSat...)
		}
		return total
	}

	// OR: threshold is always 1, so RecoverCoefficients()[0] is algebraically
	// 1 for any choice of child - computed uniformly rather than hardcoded,
	// per the scheme's own note that this simplification should stay explicit.
	scrambled := p.NewZr().Set(recCoeffs[0]).ThenMul(currentCoeff)
	for _, c := range n.children {
		if sat := c.SatisfyingAttributes(attrs, scrambled); sat != nil {
			return sat
		}
	}
	return nil
}
