package qrsteg_test

import (
	"fmt"

	"github.com/qrsteg/qrsteg"
)

func Example() {
	primary := "https://example.com/menu"
	secondary := "table-7"

	res, err := qrsteg.Encode(primary, secondary, nil)
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	dec, err := qrsteg.DecodeMatrix(res.Matrix.Modules(), primary, nil)
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	fmt.Println(dec.Primary)
	fmt.Println(dec.Secondary)
	// Output:
	// https://example.com/menu
	// table-7
}
