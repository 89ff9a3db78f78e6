package core

import "fmt"

func errLevelThree(op string, got uint8) error {
	return fmt.Errorf("tensorpcs/core: %s requires a level-3 element, got level %d", op, got)
}
