package draft

import "fmt"

// PickerPosition computes which slot in the draft_position ordering picks at
// the given 0-based pick index. round_robin repeats the base order every
// round; snake reverses it on odd rounds. The function is pure so the server
// and any display-only caller derive identical turn previews, including for
// indices beyond the picks made so far.
func PickerPosition(draftType Type, participants, pickIndex int) (int, error) {
	if participants < 1 {
		return 0, fmt.Errorf("participant count must be at least 1, got %d", participants)
	}
	if pickIndex < 0 {
		return 0, fmt.Errorf("pick index cannot be negative, got %d", pickIndex)
	}

	round := pickIndex / participants
	pos := pickIndex % participants
	if draftType == TypeSnake && round%2 == 1 {
		return participants - 1 - pos, nil
	}

	return pos, nil
}

// PickerAt resolves the participant id picking at pickIndex. order must be the
// participant ids sorted by draft_position.
func PickerAt(draftType Type, order []string, pickIndex int) (string, error) {
	pos, err := PickerPosition(draftType, len(order), pickIndex)
	if err != nil {
		return "", err
	}

	return order[pos], nil
}
