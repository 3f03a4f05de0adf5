/*
Package queue defines the tasks performed to grow a tree, one per node,
as well as an interface for a Queue to manage them.

It also provides an in-memory FIFO implementation of the Queue interface.
*/
package queue
