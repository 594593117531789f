package circuit

import "fmt"

// Step runs one pipeline cycle over live: Prepare for all, then Compute for
// all, then Commit for all. No pass starts before the previous one finished
// for every instance.
func Step(live []Instance) {
	for i, inst := range live {
		mustBeLive(i, inst).Prepare()
	}
	for i, inst := range live {
		mustBeLive(i, inst).Compute()
	}
	for i, inst := range live {
		mustBeLive(i, inst).Commit()
	}
}

func mustBeLive(i int, inst Instance) Instance {
	if inst == nil {
		panic(fmt.Sprintf("circuit: nil instance at position %d of the live set", i))
	}
	if !inst.Active() {
		panic(fmt.Sprintf("circuit: inactive %s instance at position %d of the live set", inst.Kind(), i))
	}
	return inst
}
