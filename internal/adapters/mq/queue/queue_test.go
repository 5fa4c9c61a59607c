package queue

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kitforge/kitforge/internal/domain/model"
)

func event(id string) Event {
	return Event{
		SubmissionID: id,
		BuildID:      "build-" + id,
		Request:      model.BuildRequest{Class: model.ClassTitan},
		TS:           time.Now(),
	}
}

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		q := NewInMemoryQueue(WithCapacity(10), WithBufferSize(10))
		ctx := context.Background()

		Convey("When enqueuing a submission", func() {
			ok := q.Enqueue(ctx, event("s1"))

			Convey("Then it should be accepted", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})

			Convey("And dequeue should deliver it", func() {
				events := q.Dequeue(ctx)
				select {
				case e := <-events:
					So(e.SubmissionID, ShouldEqual, "s1")
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for event")
				}
			})
		})

		Convey("When enqueuing several submissions", func() {
			for i, id := range []string{"a", "b", "c"} {
				So(q.Enqueue(ctx, event(id)), ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, i+1)
			}

			Convey("Then dequeue should preserve order", func() {
				events := q.Dequeue(ctx)
				for _, want := range []string{"a", "b", "c"} {
					select {
					case e := <-events:
						So(e.SubmissionID, ShouldEqual, want)
					case <-time.After(time.Second):
						t.Fatal("timed out waiting for event")
					}
				}
			})
		})
	})
}

func TestQueueCapacity(t *testing.T) {
	Convey("Given a queue with capacity two", t, func() {
		q := NewInMemoryQueue(WithCapacity(2), WithBufferSize(2))
		ctx := context.Background()

		Convey("When filling it past capacity", func() {
			So(q.Enqueue(ctx, event("a")), ShouldBeTrue)
			So(q.Enqueue(ctx, event("b")), ShouldBeTrue)
			full := q.Enqueue(ctx, event("c"))

			Convey("Then the overflow submission should be rejected", func() {
				So(full, ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})
	})
}

func TestQueueClose(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		q := NewInMemoryQueue(WithCapacity(10))
		ctx := context.Background()

		Convey("When closed", func() {
			So(q.Enqueue(ctx, event("a")), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then it should report closed", func() {
				So(q.IsClosed(), ShouldBeTrue)
			})

			Convey("And new submissions should be rejected", func() {
				So(q.Enqueue(ctx, event("b")), ShouldBeFalse)
			})

			Convey("And the dequeue channel should drain then close", func() {
				events := q.Dequeue(ctx)

				select {
				case e := <-events:
					So(e.SubmissionID, ShouldEqual, "a")
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for drained event")
				}

				select {
				case _, open := <-events:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for channel close")
				}
			})

			Convey("And closing again should be a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}

func TestQueueContextCancellation(t *testing.T) {
	Convey("Given a dequeue bound to a cancellable context", t, func() {
		q := NewInMemoryQueue(WithCapacity(10))
		ctx, cancel := context.WithCancel(context.Background())

		events := q.Dequeue(ctx)

		Convey("When the context is cancelled", func() {
			cancel()
			So(q.Enqueue(context.Background(), event("a")), ShouldBeTrue)

			Convey("Then the dequeue channel should close", func() {
				select {
				case _, open := <-events:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for channel close")
				}
			})
		})
	})
}
