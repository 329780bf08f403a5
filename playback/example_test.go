package playback_test

import (
	"fmt"

	"github.com/katalvlaran/algotrace/bst"
	"github.com/katalvlaran/algotrace/playback"
	"github.com/katalvlaran/algotrace/trace"
)

// ExampleController steps through a BST build with a manual scheduler.
func ExampleController() {
	tr, _, err := bst.Build([]int{2, 1, 3})
	if err != nil {
		fmt.Println(err)
		return
	}
	sched := &playback.ManualScheduler{}
	c := playback.New(
		playback.WithScheduler(sched),
		playback.WithDeriver(playback.NewVisited()),
	)
	if err := c.Load(trace.Erase(tr)); err != nil {
		fmt.Println(err)
		return
	}
	c.Play()
	for sched.Tick() > 0 {
	}
	v := c.Snapshot()
	fmt.Println(v.State, v.Index+1, "of", v.Len)
	fmt.Println(v.Step.Description)
	fmt.Println(v.Derived[0])
	// Output:
	// complete 7 of 7
	// Tree built: 3 nodes, height 2
	// [n0 n1 n2]
}
