// Package address holds the prefecture/city lookup table used to validate
// registration addresses server-side. The UI constrains the city picker to
// the chosen prefecture, but that constraint is not trustworthy.
package address

// cities maps each prefecture to its selectable municipalities.
var cities = map[string][]string{
	"北海道":  {"札幌市", "函館市", "旭川市", "釧路市", "帯広市", "小樽市"},
	"青森県":  {"青森市", "弘前市", "八戸市", "むつ市"},
	"岩手県":  {"盛岡市", "花巻市", "一関市", "奥州市"},
	"宮城県":  {"仙台市", "石巻市", "大崎市", "名取市"},
	"秋田県":  {"秋田市", "横手市", "大仙市", "由利本荘市"},
	"山形県":  {"山形市", "鶴岡市", "酒田市", "米沢市"},
	"福島県":  {"福島市", "郡山市", "いわき市", "会津若松市"},
	"茨城県":  {"水戸市", "つくば市", "日立市", "土浦市"},
	"栃木県":  {"宇都宮市", "小山市", "栃木市", "足利市"},
	"群馬県":  {"前橋市", "高崎市", "太田市", "伊勢崎市"},
	"埼玉県":  {"さいたま市", "川口市", "川越市", "所沢市", "越谷市"},
	"千葉県":  {"千葉市", "船橋市", "松戸市", "市川市", "柏市"},
	"東京都":  {"千代田区", "中央区", "港区", "新宿区", "渋谷区", "世田谷区", "杉並区", "練馬区", "八王子市", "町田市"},
	"神奈川県": {"横浜市", "川崎市", "相模原市", "藤沢市", "横須賀市"},
	"新潟県":  {"新潟市", "長岡市", "上越市", "三条市"},
	"富山県":  {"富山市", "高岡市", "射水市", "魚津市"},
	"石川県":  {"金沢市", "小松市", "白山市", "加賀市"},
	"福井県":  {"福井市", "坂井市", "越前市", "敦賀市"},
	"山梨県":  {"甲府市", "甲斐市", "南アルプス市", "笛吹市"},
	"長野県":  {"長野市", "松本市", "上田市", "飯田市"},
	"岐阜県":  {"岐阜市", "大垣市", "各務原市", "多治見市"},
	"静岡県":  {"静岡市", "浜松市", "沼津市", "富士市"},
	"愛知県":  {"名古屋市", "豊田市", "岡崎市", "一宮市", "豊橋市"},
	"三重県":  {"津市", "四日市市", "鈴鹿市", "松阪市"},
	"滋賀県":  {"大津市", "草津市", "長浜市", "彦根市"},
	"京都府":  {"京都市", "宇治市", "亀岡市", "舞鶴市"},
	"大阪府":  {"大阪市", "堺市", "東大阪市", "豊中市", "吹田市", "枚方市"},
	"兵庫県":  {"神戸市", "姫路市", "西宮市", "尼崎市", "明石市"},
	"奈良県":  {"奈良市", "橿原市", "生駒市", "大和郡山市"},
	"和歌山県": {"和歌山市", "田辺市", "橋本市", "紀の川市"},
	"鳥取県":  {"鳥取市", "米子市", "倉吉市", "境港市"},
	"島根県":  {"松江市", "出雲市", "浜田市", "益田市"},
	"岡山県":  {"岡山市", "倉敷市", "津山市", "玉野市"},
	"広島県":  {"広島市", "福山市", "呉市", "東広島市"},
	"山口県":  {"山口市", "下関市", "宇部市", "周南市"},
	"徳島県":  {"徳島市", "阿南市", "鳴門市", "吉野川市"},
	"香川県":  {"高松市", "丸亀市", "三豊市", "観音寺市"},
	"愛媛県":  {"松山市", "今治市", "新居浜市", "西条市"},
	"高知県":  {"高知市", "南国市", "四万十市", "香南市"},
	"福岡県":  {"福岡市", "北九州市", "久留米市", "飯塚市", "大牟田市"},
	"佐賀県":  {"佐賀市", "唐津市", "鳥栖市", "伊万里市"},
	"長崎県":  {"長崎市", "佐世保市", "諫早市", "大村市"},
	"熊本県":  {"熊本市", "八代市", "天草市", "玉名市"},
	"大分県":  {"大分市", "別府市", "中津市", "佐伯市"},
	"宮崎県":  {"宮崎市", "都城市", "延岡市", "日向市"},
	"鹿児島県": {"鹿児島市", "霧島市", "鹿屋市", "薩摩川内市"},
	"沖縄県":  {"那覇市", "沖縄市", "うるま市", "浦添市", "宜野湾市"},
}

// ValidPrefecture reports whether p is a known prefecture.
func ValidPrefecture(p string) bool {
	_, ok := cities[p]
	return ok
}

// ValidCity reports whether c is a selectable city within prefecture p.
func ValidCity(p, c string) bool {
	for _, city := range cities[p] {
		if city == c {
			return true
		}
	}
	return false
}

// Cities returns the selectable cities for prefecture p, or nil if the
// prefecture is unknown.
func Cities(p string) []string {
	return cities[p]
}
