package reducer

import "tform/internal/event"

// globalBinding resolves the default key bindings table (spec §6) to a
// Command, for every key except Tab/BackTab — those are deliberately
// excluded here and handled by the node-dispatch-then-traversal-fallback
// path in reduceInputKey, per the literal tie-break order in spec §4.1.
func globalBinding(k event.Key, overlayOpen bool) (Command, bool) {
	switch {
	case isRune(k, 'c') && k.Mods.Has(event.ModCtrl):
		return Command{Kind: CmdExit}, true

	case k.Code == event.CodeEsc:
		if overlayOpen {
			return Command{Kind: CmdCloseOverlay}, true
		}
		return Command{Kind: CmdExit}, true

	case k.Code == event.CodeEnter:
		return Command{Kind: CmdSubmit}, true

	case isRune(k, 'o') && k.Mods.Has(event.ModCtrl):
		return Command{Kind: CmdOpenOverlayShortcut}, true

	case k.Code == event.CodeRune && k.Rune >= '1' && k.Rune <= '9' &&
		(k.Mods.Has(event.ModCtrl) || k.Mods.Has(event.ModAlt)):
		return Command{Kind: CmdOpenOverlayAtIndex, OverlayIndex: int(k.Rune - '1')}, true

	case k.Code == event.CodeBackspace && k.Mods.Has(event.ModCtrl):
		return Command{Kind: CmdTextAction, TextAction: WordDeleteBackward}, true

	case isRune(k, 'w') && k.Mods.Has(event.ModCtrl):
		return Command{Kind: CmdTextAction, TextAction: WordDeleteBackward}, true

	case k.Code == event.CodeDelete && k.Mods.Has(event.ModCtrl):
		return Command{Kind: CmdTextAction, TextAction: WordDeleteForward}, true
	}
	return Command{}, false
}

func isRune(k event.Key, r rune) bool {
	return k.Code == event.CodeRune && k.Rune == r
}

func isTab(k event.Key) bool     { return k.Code == event.CodeTab }
func isBackTab(k event.Key) bool { return k.Code == event.CodeBackTab }
