package speech

// hanzi maps a pinyin syllable to a common first-tone character so the TTS
// voice reads it as Mandarin instead of spelling the Latin letters.
var hanzi = map[string]string{
	"p":     "坡",
	"pa":    "趴",
	"po":    "坡",
	"pi":    "批",
	"pu":    "扑",
	"pai":   "拍",
	"pei":   "胚",
	"pao":   "抛",
	"pou":   "剖",
	"pan":   "攀",
	"pen":   "喷",
	"pang":  "乓",
	"peng":  "烹",
	"ping":  "乒",
	"pie":   "瞥",
	"piao":  "飘",
	"pian":  "偏",
	"pin":   "拼",
	"q":     "七",
	"qi":    "七",
	"qu":    "区",
	"qia":   "掐",
	"qie":   "切",
	"qiao":  "敲",
	"qiu":   "秋",
	"qian":  "千",
	"qin":   "亲",
	"qiang": "枪",
	"qing":  "青",
	"qiong": "穷",
	"qun":   "裙", // second tone reads more naturally
	"que":   "缺",
	"quan":  "圈",
}

// Pronunciation returns the text sent to the synthesizer for label:
// the table entry when there is one, otherwise label itself.
func Pronunciation(label string) string {
	if h, ok := hanzi[label]; ok {
		return h
	}
	return label
}
