package base

/***************************************
 * Assertions
 ***************************************/

func Assert(pred func() bool) {
	if success := pred(); !success {
		Panicf("failed assertion")
	}
}

func AssertNotIn[T comparable](elt T, values ...T) {
	for _, x := range values {
		if x == elt {
			Panicf("element <%v> is already in the slice", elt)
		}
	}
}

func UnexpectedValue(x interface{}) {
	Panicf("unexpected value: <%T> %#v", x, x)
}
