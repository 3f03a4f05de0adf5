package arbor

import (
	"context"
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/queue"
	"github.com/pbanos/arbor/tree"
)

// Seed takes a context, a set of training rows, the index
// of the label column on them, a queue and a node store and
// sets everything up so that workers that consume from the
// queue afterwards grow a tree that predicts the label column
// using the rest of columns as attributes.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if there are no rows, the label index is out of range, or
// the node cannot be created on the store or the task pushed
// to the queue (in the amount of time allowed by the given
// context).
func Seed(ctx context.Context, rows dataset.Rows, labelIndex int, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	if len(rows) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	width := len(rows[0])
	if labelIndex < 0 || labelIndex >= width {
		return nil, fmt.Errorf("label index %d for rows of width %d: %w", labelIndex, width, dataset.ErrLabelIndex)
	}
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("row %d has %d values, expected %d: %w", i, len(r), width, dataset.ErrRowLength)
		}
	}
	attributes := make([]int, 0, width-1)
	for i := 0; i < width; i++ {
		if i != labelIndex {
			attributes = append(attributes, i)
		}
	}
	n := &tree.Node{Rows: rows, Attribute: tree.NoAttribute}
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	task := &queue.Task{Node: n, Rows: rows, Depth: 1, AvailableAttributes: attributes}
	t := tree.New(n.ID, ns, labelIndex, nil)
	err = q.Push(ctx, task)
	if err != nil {
		ns.Delete(ctx, n)
		return nil, err
	}
	return t, nil
}

// BranchOut takes a context, a task, a tree and a pruning strategy,
// develops the node in the task using the task's rows and available
// attributes to predict the tree's label column and returns a set of
// tasks to develop the resulting children nodes or an error.
// The node is stored on the tree's NodeStore before returning, turned
// either into a leaf or into an internal node with a branch for every
// value of its attribute observed on the rows.
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, ps *PruningStrategy) (tasks []*queue.Task, e error) {
	n := task.Node
	if len(task.Rows) == 0 {
		if n.IsRoot() {
			return nil, dataset.ErrEmptyDataset
		}
		n.MakeLeaf(task.Fallback)
		return nil, t.NodeStore.Store(ctx, n)
	}
	defer func() {
		err := t.NodeStore.Store(ctx, n)
		if e == nil {
			e = err
		}
	}()
	if task.Rows.SameValue(t.LabelIndex) {
		n.MakeLeaf(task.Rows[0][t.LabelIndex])
		return nil, nil
	}
	dominant, err := task.Rows.DominantClass(t.LabelIndex)
	if err != nil {
		return nil, err
	}
	if ps.maxDepthReached(task.Depth) {
		n.MakeLeaf(dominant)
		return nil, nil
	}
	part := bestPartition(task.Rows, t.LabelIndex, task.Available)
	if part == nil || !part.Discriminates() || ps.prune(task.Rows, part, t.LabelIndex) {
		n.MakeLeaf(dominant)
		return nil, nil
	}
	n.MakeInternal(part.Attribute)
	available := task.Without(part.Attribute)
	tasks = make([]*queue.Task, 0, len(part.Groups))
	for i, g := range part.Groups {
		child := &tree.Node{ParentID: n.ID, Rows: g, Attribute: tree.NoAttribute}
		err = t.NodeStore.Create(ctx, child)
		if err != nil {
			return nil, err
		}
		n.AddBranch(part.Keys[i], child.ID)
		tasks = append(tasks, &queue.Task{
			Node:                child,
			Rows:                g,
			Fallback:            dominant,
			Depth:               task.Depth + 1,
			AvailableAttributes: available,
		})
	}
	return tasks, nil
}

// Work takes a context, a tree, a queue and a pruning strategy
// and enters a loop in which it:
//   - pulls a task for the queue,
//   - branches its node out into new subnodes using BranchOut
//   - pushes the tasks for the new subnodes into the queue
//   - marks the task as completed on the queue
//
// The worker ends returning nil once no task can be pulled from
// the queue.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, ps *PruningStrategy) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		err = workTask(ctx, task, t, q, ps)
		if err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, t *tree.Tree, q queue.Queue, ps *PruningStrategy) error {
	nts, err := BranchOut(ctx, task, t, ps)
	if err != nil {
		q.Drop(ctx, task.ID())
		return err
	}
	for _, nt := range nts {
		err = q.Push(ctx, nt)
		if err != nil {
			q.Drop(ctx, task.ID())
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

type options struct {
	strategy  PruningStrategy
	nodeStore tree.NodeStore
	header    []string
}

// Option configures how CreateTree grows a tree
type Option func(*options)

// WithMaxDepth limits the depth of the grown tree, the
// root being at depth 1. 0 means no limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.strategy.MaxDepth = depth
	}
}

// WithPruner sets a Pruner to reject partitions while growing
// the tree. By default no partition is rejected.
func WithPruner(p Pruner) Option {
	return func(o *options) {
		o.strategy.Pruner = p
	}
}

// WithNodeStore makes the tree be grown on the given NodeStore
// instead of a new memory one.
func WithNodeStore(ns tree.NodeStore) Option {
	return func(o *options) {
		o.nodeStore = ns
	}
}

// WithHeader sets the column names of the rows the tree
// is grown from.
func WithHeader(header []string) Option {
	return func(o *options) {
		o.header = header
	}
}

/*
CreateTree takes a context, a set of training rows, the index of their label
column and options, and grows an ID3 decision tree predicting the label from
the rest of columns. Every node is developed by a single worker on a memory
queue, parents before children.
*/
func CreateTree(ctx context.Context, rows dataset.Rows, labelIndex int, opts ...Option) (*tree.Tree, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.nodeStore == nil {
		o.nodeStore = tree.NewMemoryNodeStore()
	}
	if o.strategy.Pruner == nil {
		o.strategy.Pruner = NoPruner()
	}
	q := queue.New()
	t, err := Seed(ctx, rows, labelIndex, q, o.nodeStore)
	if err != nil {
		return nil, err
	}
	t.Header = o.header
	err = Work(ctx, t, q, &o.strategy)
	if err != nil {
		return nil, err
	}
	return t, nil
}

/*
Trainer is a function that grows a tree from a set of rows to predict
the column at labelIndex.
*/
type Trainer func(ctx context.Context, rows dataset.Rows, labelIndex int) (*tree.Tree, error)

// ID3Trainer returns a Trainer that grows trees with CreateTree
// and the given options.
func ID3Trainer(opts ...Option) Trainer {
	return func(ctx context.Context, rows dataset.Rows, labelIndex int) (*tree.Tree, error) {
		return CreateTree(ctx, rows, labelIndex, opts...)
	}
}

// PruningTrainer returns a Trainer that grows trees with the base
// Trainer and then applies reduced-error pruning to them with the
// given validation rows.
func PruningTrainer(base Trainer, validation dataset.Rows) Trainer {
	return func(ctx context.Context, rows dataset.Rows, labelIndex int) (*tree.Tree, error) {
		t, err := base(ctx, rows, labelIndex)
		if err != nil {
			return nil, err
		}
		_, err = Prune(ctx, t, validation, labelIndex)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}
