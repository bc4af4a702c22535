package santa

// elfNames is the pool drawn from when a setup ToDo does not name its elf.
var elfNames = [256]string{
	"Alabaster", "Archibald", "Applejack", "Amberglow", "Astra", "Auburn", "Aurora", "Amity", "Aurelian", "Azura", "Aspen",
	"Bells", "Blitzie", "Bounder", "Bubble", "Buddy", "Bramble", "Biscuit", "Beryl", "Brio", "Blythe",
	"Cherry", "Cookie", "Cocoa", "Crinkle", "Cuddles", "Charm", "Clover", "Candlenut", "Celestia", "Crispin",
	"Dabble", "Dandy", "Doodle", "Dingle", "Dongle", "Dazzle", "Drizzle", "Dulcie", "Dewdrop", "Dandelion",
	"Ellie", "Elmo", "Evergreen", "Ember", "Echo", "Edelweiss", "Elfina", "Euphoria", "Elara", "Eos",
	"Flurry", "Frosty", "Frostfern", "Frostine", "Figgy", "Flicker", "Frangle", "Fable", "Frolic", "Feather", "Fiora",
	"Glimmer", "Glitter", "Gingersnap", "Glee", "Gossamer", "Gusty", "Giddy", "Glowbug", "Galatea", "Glimora", "Glintleaf",
	"Holly", "Happy", "Harmony", "Hobnob", "Hugsy", "Hickory", "Hazel", "Humphrey", "Halcyon", "Hesper",
	"Icicle", "Ivy", "Inky", "Iris", "Iggle", "Isolde", "Iota", "Illumina", "Indigo", "Iolana",
	"Jimmy", "Jingle", "Jolly", "Jovial", "Jester", "Jubilee", "Jasmine", "Joviette", "Juniper", "Jovani",
	"Kandy", "Kip", "Knickers", "Kringle", "Kookie", "Kismet", "Keenan", "Kettle", "Kalliope", "Korrin",
	"Lolly", "Lumi", "Lucky", "Larkspur", "Luster", "Lilac", "Lively", "Linden", "Lyric", "Liora",
	"Maple", "Merry", "Misty", "Muffin", "Myrth", "Mallow", "Moonbeam", "Moonwhisper", "Moppet", "Mirabel", "Mystara",
	"Nibbles", "Nutmeg", "Nuzzle", "Nifty", "Nectar", "Noodle", "Nimble", "Nimora", "Nerissa", "Noxie",
	"Olaf", "Opal", "Orin", "Orca", "Onyx", "Olive", "Octavia", "Ocarina", "Odette", "Orchid",
	"Pepper", "Peppermint", "Pinecone", "Pippin", "Purdy", "Puddle", "Pixie", "Pansy", "Primrose", "Pavonine",
	"Quincy", "Quibble", "Quill", "Quirky", "Quaver", "Quartz", "Quokka", "Quenby", "Quarra", "Quintessa",
	"Ripplo", "Rolo", "Rudy", "Ruffles", "Rusty", "Razzle", "Ramble", "Rhyme", "Riven", "Roscoe",
	"Shinny", "Snowdrop", "Snowflake", "Snappy", "Sparkleberry", "Sprinkle", "Sugarplum", "Starbright", "Solstice", "Sylphie", "Sylvaris",
	"Tinsel", "Twinkle", "Taffy", "Tango", "Tiptoe", "Truffle", "Tulip", "Tinker", "Thistle", "Tauriel", "Thalindra",
	"Vixen", "Vivi", "Velvet", "Vireo", "Vesper", "Verity", "Valen", "Valkyra", "Viridian", "Vallora",
	"Wunorse", "Waffle", "Winky", "Whimsy", "Wobble", "Wander", "Wisp", "Wisteria", "Willow", "Wyrda",
	"Xander", "Xylo", "Xenia", "Xavi", "Xylia", "Xanadu", "Xerra", "Xiomara", "Xeraphine", "Xylora",
	"Yule", "Yara", "Yanni", "Yippee", "Yarrow", "Yodel", "Yvette", "Yonder", "Ysabel", "Ysolde",
	"Zanzwi", "Zulu", "Zigzag", "Zippy", "Zinna", "Zephyr", "Zelda", "Zodiac", "Zarina", "Zyra",
}

// pickName returns the default name for the i-th elf Santa spawns,
// wrapping around once the pool is exhausted.
func pickName(i int) string {
	return elfNames[i%len(elfNames)]
}
