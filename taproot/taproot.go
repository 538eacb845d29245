// Package taproot assembles tapscript trees (BIP341) and produces the merkle
// root that a taproot output key commits to, along with the inclusion proofs
// and control blocks needed to spend each leaf.
package taproot

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"

	"github.com/reddcoin-project/go-rddcore/pubkey"
)

// BaseLeafVersion is the leaf version of plain tapscript leaves.
const BaseLeafVersion = txscript.BaseLeafVersion

// Proof is the inclusion proof of a single leaf of a ScriptTree.
type Proof struct {
	Leaf txscript.TapLeaf
	// InclusionProof is the concatenation of the sibling hashes on the
	// path from the leaf up to the root.
	InclusionProof []byte
}

// ScriptTree is a fully assembled tapscript tree.  Every leaf carries its
// inclusion proof, indexed by leaf hash.
type ScriptTree struct {
	root   txscript.TapNode
	proofs []Proof
	index  map[chainhash.Hash]int
}

// NewScriptTree assembles leaves into a tree.  Leaves are paired left to
// right and the resulting branches merged in order, the same shape Bitcoin
// Core and btcd build.
func NewScriptTree(leaves ...txscript.TapLeaf) (*ScriptTree, error) {
	if len(leaves) == 0 {
		return nil, makeError(ErrNoLeaves, "script tree needs at least one leaf")
	}

	tree := &ScriptTree{
		proofs: make([]Proof, len(leaves)),
		index:  make(map[chainhash.Hash]int, len(leaves)),
	}
	for i, leaf := range leaves {
		if leaf.LeafVersion&1 != 0 {
			str := fmt.Sprintf("leaf %d has odd version 0x%02x", i,
				byte(leaf.LeafVersion))
			return nil, makeError(ErrInvalidLeafVersion, str)
		}
		h := leaf.TapHash()
		if _, ok := tree.index[h]; ok {
			str := fmt.Sprintf("leaf %d duplicates leaf hash %s", i, h)
			return nil, makeError(ErrDuplicateLeaf, str)
		}
		tree.index[h] = i
		tree.proofs[i].Leaf = leaf
	}

	if len(leaves) == 1 {
		tree.root = leaves[0]
		return tree, nil
	}

	// First pass: pair up the leaves.  A trailing odd leaf is merged with
	// the last pair.
	var branches []txscript.TapBranch
	for i := 0; i < len(leaves); i += 2 {
		if i == len(leaves)-1 {
			last := branches[len(branches)-1]
			branches[len(branches)-1] = txscript.NewTapBranch(last, leaves[i])

			lastHash := last.TapHash()
			tree.addSibling(leaves[i], lastHash)
			leafHash := leaves[i].TapHash()
			tree.addSibling(last.Left(), leafHash)
			tree.addSibling(last.Right(), leafHash)
			continue
		}

		left, right := leaves[i], leaves[i+1]
		branches = append(branches, txscript.NewTapBranch(left, right))
		tree.addSibling(left, right.TapHash())
		tree.addSibling(right, left.TapHash())
	}

	// Second pass: merge branches pairwise, queue style, until a single
	// root is left.
	for len(branches) > 1 {
		left, right := branches[0], branches[1]
		branches = append(branches[2:], txscript.NewTapBranch(left, right))

		leftHash, rightHash := left.TapHash(), right.TapHash()
		for _, leaf := range leafDescendants(left) {
			tree.addSibling(leaf, rightHash)
		}
		for _, leaf := range leafDescendants(right) {
			tree.addSibling(leaf, leftHash)
		}
	}
	tree.root = branches[0]

	return tree, nil
}

// NewScriptTreeFromScripts assembles a tree of base version leaves.
func NewScriptTreeFromScripts(scripts ...[]byte) (*ScriptTree, error) {
	leaves := make([]txscript.TapLeaf, 0, len(scripts))
	for _, script := range scripts {
		leaves = append(leaves, txscript.NewBaseTapLeaf(script))
	}
	return NewScriptTree(leaves...)
}

func (t *ScriptTree) addSibling(leaf txscript.TapNode, sibling chainhash.Hash) {
	i := t.index[leaf.TapHash()]
	t.proofs[i].InclusionProof = append(t.proofs[i].InclusionProof, sibling[:]...)
}

func leafDescendants(node txscript.TapNode) []txscript.TapNode {
	if node.Left() == nil && node.Right() == nil {
		return []txscript.TapNode{node}
	}
	return append(leafDescendants(node.Left()), leafDescendants(node.Right())...)
}

// MerkleRoot returns the 32-byte root hash the output key commits to.
func (t *ScriptTree) MerkleRoot() []byte {
	h := t.root.TapHash()
	return h[:]
}

// Len returns the number of leaves.
func (t *ScriptTree) Len() int {
	return len(t.proofs)
}

// Proof returns the inclusion proof of leaf.
func (t *ScriptTree) Proof(leaf txscript.TapLeaf) (*Proof, error) {
	h := leaf.TapHash()
	i, ok := t.index[h]
	if !ok {
		return nil, makeError(ErrUnknownLeaf,
			fmt.Sprintf("leaf %s is not in the tree", h))
	}
	p := t.proofs[i]
	p.InclusionProof = append([]byte(nil), p.InclusionProof...)
	return &p, nil
}

// branchHash hashes two sibling nodes in lexicographic order.
func branchHash(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	h := chainhash.TaggedHash(chainhash.TagTapBranch, a, b)
	return h[:]
}

// Root folds the inclusion proof over the leaf hash and returns the merkle
// root it proves membership in.
func (p *Proof) Root() []byte {
	leafHash := p.Leaf.TapHash()
	root := leafHash[:]
	for i := 0; i+chainhash.HashSize <= len(p.InclusionProof); i += chainhash.HashSize {
		root = branchHash(root, p.InclusionProof[i:i+chainhash.HashSize])
	}
	return root
}

// ControlBlock builds the control block spending this leaf from an output
// keyed by internalKey.
func (p *Proof) ControlBlock(internalKey *pubkey.PublicKey) (*ControlBlock, error) {
	tweak, err := internalKey.TapTweak(p.Root())
	if err != nil {
		return nil, err
	}
	return &ControlBlock{
		InternalKey:     internalKey,
		OutputKeyYIsOdd: tweak.Parity,
		LeafVersion:     p.Leaf.LeafVersion,
		InclusionProof:  append([]byte(nil), p.InclusionProof...),
	}, nil
}

// ControlBlock is the last witness element of a script path spend.
type ControlBlock struct {
	InternalKey     *pubkey.PublicKey
	OutputKeyYIsOdd bool
	LeafVersion     txscript.TapscriptLeafVersion
	InclusionProof  []byte
}

// Bytes serializes the control block as
// [leaf version | parity] [x-only internal key] [inclusion proof].
func (c *ControlBlock) Bytes() []byte {
	b := make([]byte, 0, 1+32+len(c.InclusionProof))
	first := byte(c.LeafVersion)
	if c.OutputKeyYIsOdd {
		first |= 1
	}
	b = append(b, first)
	b = append(b, c.InternalKey.XOnly()...)
	return append(b, c.InclusionProof...)
}

func (c *ControlBlock) String() string {
	return hex.EncodeToString(c.Bytes())
}
