package base

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// emojiAlphabet maps each byte value to one emoji, in byte order.
const emojiAlphabet = "" +
	"🚀🪐☄🛰🌌🌑🌒🌓🌔🌕🌖🌗🌘🌍🌏🌎" +
	"🐉☀💻🖥💾💿😂❤😍🤣😊🙏💕😭😘👍" +
	"😅👏😁🔥🥰💔💖💙😢🤔😆🙄💪😉☺👌" +
	"🤗💜😔😎😇🌹🤦🎉💞✌✨🤷😱😌🌸🙌" +
	"😋💗💚😏💛🙂💓🤩😄😀🖤😃💯🙈👇🎶" +
	"😒🤭❣😜💋👀😪😑💥🙋😞😩😡🤪👊🥳" +
	"😥🤤👉💃😳✋😚😝😴🌟😬🙃🍀🌷😻😓" +
	"⭐✅🥺🌈😈🤘💦✔😣🏃💐☹🎊💘😠☝" +
	"😕🌺🎂🌻😐🖕💝🙊😹🗣💫💀👑🎵🤞😛" +
	"🔴😤🌼😫⚽🤙☕🏆🤫👈😮🙆🍻🍃🐶💁" +
	"😲🌿🧡🎁⚡🌞🎈❌✊👋😰🤨😶🤝🚶💰" +
	"🍓💢🤟🙁🚨💨🤬✈🎀🍺🤓😙💟🌱😖👶" +
	"🥴▶➡❓💎💸⬇😨🌚🦋😷🕺⚠🙅😟😵" +
	"👎🤲🤠🤧📌🔵💅🧐🐾🍒😗🤑🌊🤯🐷☎" +
	"💧😯💆👆🎤🙇🍑❄🌴💣🐸💌📍🥀🤢👅" +
	"💡💩👐📸👻🤐🤮🎼🥵🚩🍎🍊👼💍📣🥂"

var (
	emojiRunes  = []rune(emojiAlphabet)
	emojiValues = func() map[rune]byte {
		m := make(map[rune]byte, len(emojiRunes))
		for i, r := range emojiRunes {
			m[r] = byte(i)
		}
		return m
	}()
)

func emojiEncode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 4)
	for _, c := range data {
		sb.WriteRune(emojiRunes[c])
	}
	return sb.String()
}

func emojiDecode(s string) ([]byte, error) {
	out := make([]byte, 0, utf8.RuneCountInString(s))
	for i, r := range s {
		c, ok := emojiValues[r]
		if !ok {
			return nil, fmt.Errorf("invalid character %q at offset %v", r, i)
		}
		out = append(out, c)
	}
	return out, nil
}
