// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matrix_test

import (
	"fmt"

	"github.com/Wan2729/ConcurretAssignment/matrix"
)

func ExampleDense_MultiplyNaive() {
	a, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := matrix.Identity(2)

	c, err := a.MultiplyNaive(b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(c)
	// Output:
	// [1, 2]
	// [3, 4]
}

func ExampleDense_Transpose() {
	a, _ := matrix.NewFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	fmt.Print(a.Transpose())
	// Output:
	// [1, 4]
	// [2, 5]
	// [3, 6]
}
