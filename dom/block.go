package dom

import "fmt"

// Block is a constructed subtree: the nodes inserted before an anchor, the
// cleanups owned by them, and an optional Mount run once the nodes are in
// the document.
//
// Anchors are end markers: a block's content is always inserted right
// before its anchor, so the content of nested blocks stays inside the range
// of the enclosing block.
type Block struct {
	Nodes []Node
	// Mount wires nested blocks. Cleanups it registers with Defer run on
	// Dispose like the rest.
	Mount func(b *Block)

	cleanups []func()
	disposed bool
}

// Defer registers fn to run when the block is disposed.
func (b *Block) Defer(fn func()) {
	if fn != nil {
		b.cleanups = append(b.cleanups, fn)
	}
}

// Dispose runs the cleanups in reverse registration order and removes the
// nodes. It is idempotent.
func (b *Block) Dispose() {
	if b == nil || b.disposed {
		return
	}
	b.disposed = true
	for i := len(b.cleanups) - 1; i >= 0; i-- {
		b.cleanups[i]()
	}
	b.cleanups = nil
	for _, n := range b.Nodes {
		n.Remove()
	}
}

// mount inserts b before ref and runs Mount untracked, so effects the
// nested blocks create are not attributed to the caller's effect.
func (r *Renderer) mount(b *Block, ref Node) {
	parent := ref.Parent()
	for _, n := range b.Nodes {
		parent.InsertBefore(n, ref)
	}
	if b.Mount != nil {
		r.rt.Untrack(func() { b.Mount(b) })
	}
}

// build calls fn untracked and guards it, returning nil on panic.
func (r *Renderer) build(what string, fn func() *Block) (b *Block) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("recovered panic while building block", "block", what, "panic", fmt.Sprint(rec))
			b = nil
		}
	}()
	r.rt.Untrack(func() { b = fn() })
	return b
}

func (r *Renderer) attached(what string, anchor Node) bool {
	if anchor == nil || anchor.Parent() == nil {
		r.logger.Error("block anchor is not attached to the document", "block", what)
		return false
	}
	return true
}

// If renders then or otherwise before anchor depending on cond, swapping
// blocks whenever the branch changes. Each swap disposes the old block and
// builds a fresh one. otherwise may be nil.
func If(r *Renderer, anchor Node, cond func() bool, then, otherwise func() *Block) (dispose func()) {
	if !r.attached("if", anchor) {
		return func() {}
	}

	var (
		current *Block
		branch  = -1
	)
	e := r.rt.Watch(func() {
		next := 1
		if cond() {
			next = 0
		}
		if next == branch {
			return
		}
		branch = next
		current.Dispose()
		current = nil

		build := then
		if next == 1 {
			build = otherwise
		}
		if build == nil {
			return
		}
		if b := r.build("if", build); b != nil {
			current = b
			r.mount(b, anchor)
		}
	})
	return func() {
		e.Dispose()
		current.Dispose()
		current = nil
	}
}

// Each renders one block per element of list before anchor. Every change
// disposes all rendered blocks and rebuilds the list.
func Each[T any](r *Renderer, anchor Node, list func() []T, render func(item T, index int) *Block) (dispose func()) {
	if !r.attached("each", anchor) {
		return func() {}
	}

	var blocks []*Block
	disposeAll := func() {
		for _, b := range blocks {
			b.Dispose()
		}
		blocks = nil
	}
	e := r.rt.Watch(func() {
		items := list()
		disposeAll()
		for i, item := range items {
			b := r.build("each", func() *Block { return render(item, i) })
			if b == nil {
				continue
			}
			blocks = append(blocks, b)
			r.mount(b, anchor)
		}
	})
	return func() {
		e.Dispose()
		disposeAll()
	}
}

// Reuse reports whether the block built for old at oldIndex can stand for
// item at index. Reusing a block only ever saves work: the result must look
// exactly like a fresh render.
type Reuse[T any] func(old T, oldIndex int, item T, index int) bool

// SameItem reuses a block when same reports the item unchanged, wherever it
// moved. Use it when the render ignores the index.
func SameItem[T any](same func(a, b T) bool) Reuse[T] {
	return func(old T, _ int, item T, _ int) bool { return same(old, item) }
}

// SameItemAndIndex reuses a block only for an unchanged item at an
// unchanged index.
func SameItemAndIndex[T any](same func(a, b T) bool) Reuse[T] {
	return func(old T, oldIndex int, item T, index int) bool {
		return oldIndex == index && same(old, item)
	}
}

// keyedBlock is one rendered item of EachKeyed. start is an empty text node
// marking where the item's range begins; the range ends at the block's last
// node (or at start when the block has none).
type keyedBlock[T any, K comparable] struct {
	key   K
	item  T
	index int
	block *Block
	start Node
}

func (kb keyedBlock[T, K]) last() Node {
	if n := len(kb.block.Nodes); n > 0 {
		return kb.block.Nodes[n-1]
	}
	return kb.start
}

// span returns every node of the item's range, nested block content included.
func (kb keyedBlock[T, K]) span() []Node {
	last := kb.last()
	nodes := []Node{kb.start}
	for n := kb.start; !n.IsSameNode(last); {
		n = n.NextSibling()
		if n == nil {
			break
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (kb keyedBlock[T, K]) dispose() {
	kb.block.Dispose()
	kb.start.Remove()
}

// EachKeyed is Each with identity. A block whose key survives a change is
// kept and moved into place when reuse accepts it for the new item and
// index; otherwise it is disposed and rebuilt, so the output always matches
// a full rebuild. Blocks whose key disappeared are disposed exactly once. A
// nil reuse rebuilds every item. Duplicate keys are logged and the later
// occurrences rendered without reuse.
func EachKeyed[T any, K comparable](r *Renderer, anchor Node, list func() []T, key func(item T, index int) K, reuse Reuse[T], render func(item T, index int) *Block) (dispose func()) {
	if !r.attached("each", anchor) {
		return func() {}
	}

	var rendered []keyedBlock[T, K]
	e := r.rt.Watch(func() {
		items := list()

		old := make(map[K]keyedBlock[T, K], len(rendered))
		for _, kb := range rendered {
			if _, ok := old[kb.key]; !ok {
				old[kb.key] = kb
			}
		}

		next := make([]keyedBlock[T, K], 0, len(items))
		fresh := make([]bool, 0, len(items))
		reused := make(map[*Block]bool, len(rendered))
		seen := make(map[K]bool, len(items))
		for i, item := range items {
			k := key(item, i)
			if seen[k] {
				r.logger.Warn("duplicate key in each block", "key", fmt.Sprint(k))
			} else if kb, ok := old[k]; ok && reuse != nil && reuse(kb.item, kb.index, item, i) {
				seen[k] = true
				reused[kb.block] = true
				kb.item, kb.index = item, i
				next = append(next, kb)
				fresh = append(fresh, false)
				continue
			}
			seen[k] = true
			b := r.build("each", func() *Block { return render(item, i) })
			if b == nil {
				continue
			}
			next = append(next, keyedBlock[T, K]{key: k, item: item, index: i, block: b, start: r.doc.CreateTextNode("")})
			fresh = append(fresh, true)
		}

		for _, kb := range rendered {
			if !reused[kb.block] {
				kb.dispose()
			}
		}

		// Place items back to front so every item's successor is final.
		parent := anchor.Parent()
		ref := anchor
		for i := len(next) - 1; i >= 0; i-- {
			kb := next[i]
			if fresh[i] {
				parent.InsertBefore(kb.start, ref)
				r.mount(kb.block, ref)
			} else if after := kb.last().NextSibling(); after == nil || !after.IsSameNode(ref) {
				for _, n := range kb.span() {
					parent.InsertBefore(n, ref)
				}
			}
			ref = kb.start
		}
		rendered = next
	})
	return func() {
		e.Dispose()
		for _, kb := range rendered {
			kb.dispose()
		}
		rendered = nil
	}
}
