package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_PositiveSentiment(t *testing.T) {
	result := Classify("좋아요 감사합니다")

	assert.Equal(t, SentimentPositive, result.Sentiment)
}

func TestClassify_NegativeSentiment(t *testing.T) {
	result := Classify("배송 실망 별로에요")

	assert.Equal(t, SentimentNegative, result.Sentiment)
}

func TestClassify_NeutralSentimentWhenNoKeywords(t *testing.T) {
	result := Classify("오늘 매장에 다녀왔습니다")

	assert.Equal(t, SentimentNeutral, result.Sentiment)
}

func TestClassify_NeutralSentimentOnTie(t *testing.T) {
	// One positive and one negative keyword each
	result := Classify("향은 좋아요 근데 배송이 늦게 왔어요")

	assert.Equal(t, SentimentNeutral, result.Sentiment)
}

func TestClassify_B2BSignal(t *testing.T) {
	result := Classify("회사 단체로 대량 구매하고 싶어요")

	assert.Equal(t, UserTypeB2B, result.UserType)
	assert.Equal(t, IntentPurchase, result.Intent)
}

func TestClassify_B2CSignal(t *testing.T) {
	result := Classify("남편 선물로 하나 사고 싶어요")

	assert.Equal(t, UserTypeB2C, result.UserType)
}

func TestClassify_UnknownUserTypeByDefault(t *testing.T) {
	result := Classify("라벤더 오일 있나요")

	assert.Equal(t, UserTypeUnknown, result.UserType)
}

func TestClassify_IntentDetection(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		intent Intent
	}{
		{"purchase", "이거 주문하고 결제까지 하고 싶어요", IntentPurchase},
		{"inquiry", "가격이 얼마인지 궁금해요", IntentInquiry},
		{"complaint", "파손돼서 왔어요 환불해주세요", IntentComplaint},
		{"greeting", "안녕하세요", IntentGreeting},
		{"booking", "원데이 클래스 예약하고 싶어요", IntentBooking},
		{"no keywords", "음", IntentGeneral},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Classify(tc.text)
			assert.Equal(t, tc.intent, result.Intent)
		})
	}
}

func TestClassify_IntentTieFallsBackToGeneral(t *testing.T) {
	// "배송" (inquiry) and "실망" (complaint) tie at one occurrence each
	result := Classify("배송 실망 별로에요")

	assert.Equal(t, IntentGeneral, result.Intent)
}

func TestClassify_Tags(t *testing.T) {
	result := Classify("불면 때문에 라벤더 디퓨저를 침실에 두려고요")

	assert.Contains(t, result.Tags, "불면")
	assert.Contains(t, result.Tags, "라벤더")
	assert.Contains(t, result.Tags, "디퓨저")
	assert.Contains(t, result.Tags, "침실")
}

func TestClassify_TagsDeduplicated(t *testing.T) {
	result := Classify("라벤더 라벤더 라벤더")

	count := 0
	for _, tag := range result.Tags {
		if tag == "라벤더" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestClassify_ConversionScore(t *testing.T) {
	// Purchase intent + positive sentiment + no pain points: every bonus applies
	high := Classify("너무 좋아요 바로 구매하고 싶어요")
	assert.InDelta(t, 0.85, high.ConversionScore, 0.001)

	// No purchase intent, no sentiment, no pain points: base + pain-point bonus
	low := Classify("오늘 다녀왔습니다")
	assert.InDelta(t, 0.4, low.ConversionScore, 0.001)

	// Pain point suppresses the last bonus
	hesitant := Classify("구매하고 싶은데 가격이 부담돼서 고민이에요")
	assert.Less(t, hesitant.ConversionScore, high.ConversionScore)
}

func TestClassify_ConversionScoreWithinRange(t *testing.T) {
	texts := []string{
		"",
		"좋아요 최고 추천 만족 구매 주문 결제",
		"별로 실망 최악",
	}

	for _, text := range texts {
		result := Classify(text)
		assert.GreaterOrEqual(t, result.ConversionScore, 0.0)
		assert.LessOrEqual(t, result.ConversionScore, 1.0)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "회사 워크숍으로 단체 예약 문의드려요 라벤더 클래스 좋아요"

	first := Classify(text)
	second := Classify(text)

	assert.Equal(t, first, second)
}

func TestClassify_LowerCasesInput(t *testing.T) {
	upper := Classify("HELLO")
	lower := Classify("hello")

	assert.Equal(t, lower.Intent, upper.Intent)
	assert.Equal(t, IntentGreeting, upper.Intent)
}
