package table

import "github.com/relnova/petrodb/errs"

func errSlotOutOfRange(slot, count int) error {
	return errs.NotFound("slot %d out of range for page with %d slots", slot, count)
}
