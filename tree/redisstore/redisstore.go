/*
Package redisstore provides a tree.NodeStore backed by a redis DB, so the
nodes of a tree can be kept outside of the process that grows it.
*/
package redisstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/redis.v5"

	"github.com/pbanos/arbor/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {
	Encode(*tree.Node) ([]byte, error)
	Decode([]byte) (*tree.Node, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec NodeEncodeDecoder
}

// New builds a tree.NodeStore backed by a redis DB. Nodes are kept
// under the key prefix:id, encoded with the given NodeEncodeDecoder.
func New(rc *redis.Client, prefix string, nencdec NodeEncodeDecoder) tree.NodeStore {
	return &redisStore{rc, prefix, nencdec}
}

func (rs *redisStore) Create(ctx context.Context, n *tree.Node) error {
	var ok bool
	for !ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		n.ID = newNodeID()
		data, err := rs.nencdec.Encode(n)
		if err != nil {
			return errors.Wrap(err, "creating node: encoding node")
		}
		ok, err = rs.rc.SetNX(rs.keyFor(n.ID), data, 0).Result()
		if err != nil {
			return errors.Wrap(err, "creating node in redis")
		}
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, id string) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q", id)
	}
	n, err := rs.nencdec.Decode([]byte(data))
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q: decoding %q", id, data)
	}
	return n, nil
}

func (rs *redisStore) Store(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(n.ID)
	data, err := rs.nencdec.Encode(n)
	if err != nil {
		return errors.Wrapf(err, "storing node %q: encoding node", key)
	}
	if err = rs.rc.Set(key, data, 0).Err(); err != nil {
		return errors.Wrapf(err, "storing node %q in redis", key)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(n.ID)
	if err := rs.rc.Del(key).Err(); err != nil {
		return errors.Wrapf(err, "deleting node %q from redis", key)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

// newNodeID returns a random UUID, retried by Create on the unlikely
// event of a collision
func newNodeID() string {
	return uuid.NewString()
}

func (rs *redisStore) keyFor(id string) string {
	return rs.prefix + ":" + id
}
