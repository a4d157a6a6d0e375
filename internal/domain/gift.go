package domain

import "time"

// Gift is a collectible materialized from a GiftTemplate. Immutable once created.
type Gift struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	AcquiredAt time.Time `json:"acquiredAt"`
}

// GiftTemplate is a catalog entry. Only materialized gifts are persisted.
type GiftTemplate struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// GiftCatalog holds every gift that can be drawn.
var GiftCatalog = []GiftTemplate{
	// Plants
	{Name: "Mini succulent orb", Icon: "🪴"},
	{Name: "Glow mushroom", Icon: "🍄"},
	{Name: "Breathing moss cube", Icon: "🟩"},
	{Name: "Singing daisy", Icon: "🌼"},
	{Name: "Tiny bamboo sprout", Icon: "🎋"},
	{Name: "Rainbow-leaf vine", Icon: "🌈"},
	{Name: "Spinning dandelion seed", Icon: "🌬️"},
	{Name: "Raindrop crystal flower", Icon: "💠"},
	{Name: "Pocket bonsai", Icon: "🌳"},
	{Name: "Dancing sunflower pixel pet", Icon: "🌻"},

	// Decorations
	{Name: "Star string lights", Icon: "✨"},
	{Name: "Cloud plush pillow", Icon: "☁️"},
	{Name: "Tiny wind chime", Icon: "🎐"},
	{Name: "Animated candle", Icon: "🕯️"},
	{Name: "Little wooden house sign", Icon: "🏠"},
	{Name: "Stargaze projector sphere", Icon: "🔮"},
	{Name: "Mini wall art", Icon: "🖼️"},
	{Name: "Crystal dreamcatcher", Icon: "🕸️"},
	{Name: "Glittering glass orb", Icon: "🔮"},
	{Name: "Rotating music box", Icon: "🎼"},

	// Nature
	{Name: "Sunset amber sphere", Icon: "🌅"},
	{Name: "Ice-cube sprite", Icon: "🧊"},
	{Name: "Pocket wave bottle", Icon: "🌊"},
	{Name: "Cotton candy cloud puff", Icon: "🍬"},
	{Name: "Mini whirling storm", Icon: "🌪️"},
	{Name: "Walking raindrop", Icon: "💧"},
	{Name: "Temperature-shifting leaf", Icon: "🍁"},
	{Name: "Glow sand", Icon: "🏜️"},
	{Name: "Tiny aurora pillar", Icon: "🌌"},
	{Name: "Mini rainbow shard", Icon: "🌈"},

	// Creatures
	{Name: "Bean bird", Icon: "🐦"},
	{Name: "Paper fox", Icon: "🦊"},
	{Name: "Bubble-blowing goldfish", Icon: "🐠"},
	{Name: "Sleepy cat puff", Icon: "🐱"},
	{Name: "Pixel dragon", Icon: "🐉"},
	{Name: "Shy ghost buddy", Icon: "👻"},
	{Name: "Leaf-hugging chameleon", Icon: "🦎"},
	{Name: "Shape-shifting slime jelly", Icon: "🍮"},
	{Name: "Mini zodiac animals", Icon: "🐀"},
	{Name: "Tiny robot companion", Icon: "🤖"},

	// Fun and utility
	{Name: "Lucky fortune slip", Icon: "📜"},
	{Name: "Mini coin pouch", Icon: "💰"},
	{Name: "Music fragment", Icon: "🎵"},
	{Name: "Mood bubble", Icon: "💭"},
	{Name: "Pocket sand timer", Icon: "⏳"},
	{Name: "Sticker pack drop", Icon: "🏷️"},
	{Name: "Mystery-shaped key", Icon: "🗝️"},
	{Name: "Daily treasure box", Icon: "🎁"},
	{Name: "Mini energy drink bottle", Icon: "⚡"},
	{Name: "DIY decor parts pack", Icon: "🧩"},
}
