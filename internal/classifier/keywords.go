package classifier

// Keyword tables for the rule-based classifier. Matching is plain substring
// counting over the lower-cased input, so entries are kept in stem form
// (e.g. "좋아" matches "좋아요" and "좋아서").

var positiveKeywords = []string{
	"좋아", "좋은", "좋네", "감사", "최고", "추천", "만족", "편안", "힐링", "향기롭",
	"사랑", "대박", "굿",
}

var negativeKeywords = []string{
	"별로", "실망", "불만", "환불", "아쉽", "나쁘", "최악", "불편", "짜증", "후회",
	"느려", "늦게",
}

var b2bKeywords = []string{
	"회사", "단체", "대량", "기업", "납품", "도매", "사업자", "직원", "워크숍", "세미나",
	"견적",
}

var b2cKeywords = []string{
	"선물", "집에서", "아이", "남편", "아내", "친구", "혼자", "제가 쓰", "개인적",
}

var intentKeywords = map[Intent][]string{
	IntentPurchase:  {"구매", "주문", "살래", "사고 싶", "싶어", "결제", "장바구니", "재입고"},
	IntentInquiry:   {"문의", "궁금", "어떻게", "얼마", "언제", "가격", "배송", "알려주"},
	IntentComplaint: {"불만", "환불", "교환", "반품", "고장", "실망", "항의", "파손"},
	IntentGreeting:  {"안녕", "반갑", "처음 왔", "hello", "hi"},
	IntentBooking:   {"예약", "수업", "클래스", "원데이", "공방", "체험", "신청"},
}

// Tag dictionaries: matched entries are returned verbatim as tags.
var symptomKeywords = []string{
	"불면", "스트레스", "두통", "피로", "우울", "불안", "비염", "집중력",
}

var productKeywords = []string{
	"라벤더", "페퍼민트", "유칼립투스", "티트리", "로즈마리", "캔들", "디퓨저",
	"오일", "롤온", "스프레이", "미스트",
}

var contextKeywords = []string{
	"수면", "사무실", "차량", "욕실", "명상", "요가", "공부", "침실",
}

// Pain-point signals that suppress the conversion bonus.
var painPointKeywords = []string{
	"비싸", "가격이 부담", "망설", "고민", "부담스럽",
}
