package services

// Static lookup tables for the heuristic rule scorer. Sourced from reported
// Vietnamese scam campaigns and commonly abused infrastructure.

var linkShorteners = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly",
	"is.gd", "buff.ly", "adf.ly", "shorte.st", "bc.vc",
	"j.mp", "v.gd", "tr.im", "tiny.cc", "lnk.to",
	"rb.gy", "cutt.ly", "s.id", "shorturl.at", "rebrand.ly",
}

var bioLinkServices = []string{
	"linktr.ee", "lnk.bio", "bio.link", "linkin.bio",
	"lnkbio.me", "linkbio.co", "tap.bio", "campsite.bio",
	"beacons.ai", "hoo.be", "solo.to", "carrd.co",
	"bio.fm", "withkoji.com", "snipfeed.co", "stan.store",
	"allmylinks.com", "contactinbio.com", "lynk.id", "msha.ke",
	"milkshake.app", "direct.me", "flowpage.com", "link.space",
}

var suspiciousTLDs = []string{
	".xyz", ".top", ".club", ".work", ".click",
	".link", ".info", ".online", ".site", ".website",
	".space", ".fun", ".icu", ".buzz", ".monster",
	".tk", ".ml", ".ga", ".cf", ".gq", ".pw",
}

// Brands scammers impersonate: Vietnamese banks, e-wallets, e-commerce
// platforms and the big consumer tech names.
var brandKeywords = []string{
	"vietcombank", "techcombank", "vietinbank", "bidv", "mbbank",
	"tpbank", "vpbank", "acb", "sacombank", "hdbank",
	"shopee", "lazada", "tiki", "sendo",
	"facebook", "zalo", "google", "microsoft",
	"apple", "samsung", "grab", "gojek", "be",
	"momo", "zalopay", "vnpay", "viettelpay",
}

// Gambling vocabulary, Vietnamese and international. Online gambling is
// illegal in Vietnam, so any of these in a domain is a strong signal.
var gamblingKeywords = []string{
	"vip", "bet", "casino", "slot", "poker", "baccarat", "blackjack",
	"xoso", "xo-so", "lo-de", "lode", "soi-cau", "soicau",
	"game-bai", "gamebai", "danh-bai", "danhbai",
	"ca-cuoc", "cacuoc", "cuoc", "dat-cuoc", "datcuoc",
	"nha-cai", "nhacai", "bong-da", "bongda", "the-thao", "thethao",
	"tai-xiu", "taixiu", "xoc-dia", "xocdia", "bau-cua", "baucua",
	"no-hu", "nohu", "quay-hu", "quayhu", "jackpot",
	"win", "lucky", "bonus", "spin", "roll",
	"sv388", "sunwin", "iwin", "go88", "rik", "b52",
	"may88", "hit",
	"inn", "palace", "crown", "royal", "diamond", "gold", "king", "queen",
	"vegas", "monte", "atlantic", "roulette", "dice", "chip",
}

// A single hit on one of these still scores high; the rest of the gambling
// vocabulary is too generic to convict a domain on its own.
var strongCasinoTerms = map[string]bool{
	"casino": true,
	"bet":    true,
	"slot":   true,
	"poker":  true,
	"inn":    true,
	"palace": true,
	"crown":  true,
}
