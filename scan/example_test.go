package scan_test

import (
	"fmt"

	"github.com/katalvlaran/algotrace/scan"
)

// ExampleBinarySearch prints each probe.
func ExampleBinarySearch() {
	tr, res, err := scan.BinarySearch([]int{1, 3, 5, 7, 9, 11}, 7)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range tr.Steps() {
		fmt.Println(s.Description)
	}
	fmt.Println(res.Found, res.Index)
	// Output:
	// Search for 7 in [1 3 5 7 9 11]
	// Probe index 2 in [0, 5]: 5
	// 5 < 7: search right half
	// Probe index 4 in [3, 5]: 9
	// 9 > 7: search left half
	// Probe index 3 in [3, 3]: 7
	// Found 7 at index 3
	// true 3
}
