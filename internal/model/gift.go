package model

// Gifts 聊天礼物目录，送礼消息的 body 只能取这里的值
var Gifts = []string{
	"Gift",
	"Flowers",
	"Chocolate",
	"Diamond",
	"Rocket",
	"Star",
	"Dove",
}

func IsGift(name string) bool {
	for _, g := range Gifts {
		if g == name {
			return true
		}
	}
	return false
}
