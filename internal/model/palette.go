package model

// Emojis are the icons offered when creating an event.
var Emojis = []string{
	"🎉", "🎂", "🎈", "🎁", "🌟", "⭐", "🎊", "🦄",
	"🌈", "🚀", "🏖️", "🎪", "🎨", "🎮", "⚽", "🏀",
}

// Colors are the card colors. Events without an explicit color get one by id.
var Colors = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#FFA07A",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E2",
}

// ColorForID picks a stable palette color for an event id.
func ColorForID(id int64) string {
	n := int64(len(Colors))
	return Colors[((id%n)+n)%n]
}
