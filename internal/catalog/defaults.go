package catalog

// Built-in drop table. Slice order is the canonical display order; the
// resolver and the lookup index both rely on it being stable.
var defaultEntries = []Entry{
	{"Little", 2}, {"classic", 3}, {"Fell", 5}, {"outer", 8}, {"horror", 25},
	{"Fresh", 32}, {"After", 44}, {"Killer", 66}, {"Dream", 77}, {"RuinsDust", 12},
	{"SnowdinDust", 20}, {"Photo Negative", 200}, {"Assured Prey", 500}, {"gencide", 900},
	{"C!insanity", 3666}, {"Avenge", 3449}, {"Ink", 5000}, {"Error", 5000}, {"Fatal error", 55555},
	{"Reaper", 99999}, {"Pesti", 3500}, {"DD", 16666}, {"Lethal Deal", 50000}, {"Hyper-dust", 99999},
	{"clown", 69420}, {"undersanity", 500000}, {"Corrupted insanity", 162162}, {"Final insanity", 241956},
	{"Superfell", 250000}, {"Cone", 100000}, {"Weakened alpha", 250000}, {"king mutiverse", 333333},
	{"zalgo", 366666}, {"error404", 404040}, {"omnipotent", 555555}, {"infected", 666666},
	{"fatal corruption", 666666}, {"virus404", 999999}, {"HIM (true insanity)", 1666666},
	{"alpha judge", 399999}, {"errordust", 444444}, {"true dust", 500000}, {"Shanghaivania", 1500000},
	{"lulzsec", 777777}, {"containment", 800000}, {"negative error404", 1404040}, {"omnithorn", 2222220},
	{"dustdustdust", 2666666}, {"final dust", 2999999}, {"butterfly404", 4040404}, {"error666", 6666666},
	{"overkill", 16000000}, {"loading", 2222222}, {"code rainbow", 2222222}, {"distortion", 3666666},
	{"entity0", 11111111}, {"anti god", 6000000}, {"CTI (corrupted true insanity)", 66666666},
	{"roland", 15000000},
}

// Items whose rarity is never helped by server luck.
var defaultRaw = []string{
	"CTI (corrupted true insanity)", "error666", "negative error404", "anti god",
}

// Limited items are excluded from a computation unless explicitly re-included.
var defaultLimited = []string{
	"CTI (corrupted true insanity)", "antigod", "clown", "undersanity", "roland",
}

// DefaultEntries returns a copy of the built-in drop table.
func DefaultEntries() []Entry {
	return append([]Entry(nil), defaultEntries...)
}

// DefaultNames returns the built-in item names in table order.
func DefaultNames() []string {
	out := make([]string, len(defaultEntries))
	for i, e := range defaultEntries {
		out[i] = e.Name
	}
	return out
}

// DefaultRawNames returns a copy of the built-in raw-item list.
func DefaultRawNames() []string {
	return append([]string(nil), defaultRaw...)
}

// DefaultLimitedNames returns a copy of the built-in limited-item list.
func DefaultLimitedNames() []string {
	return append([]string(nil), defaultLimited...)
}
