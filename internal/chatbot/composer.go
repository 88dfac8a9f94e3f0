// Package chatbot maps classified intents to canned reply templates.
package chatbot

import "github.com/hyesong/aroma-api/internal/classifier"

// SignupPromptThreshold is the message count from which the signup
// call-to-action is appended to the fallback reply.
const SignupPromptThreshold = 3

var replyTemplates = map[classifier.Intent]string{
	classifier.IntentPurchase:  "관심 가져주셔서 감사합니다! 원하시는 제품을 알려주시면 구매 방법을 안내해 드릴게요.",
	classifier.IntentInquiry:   "문의 감사합니다. 제품 가격과 배송은 보통 2~3일 내에 안내드리고 있어요. 구체적으로 어떤 점이 궁금하신가요?",
	classifier.IntentComplaint: "불편을 드려 정말 죄송합니다. 주문 번호를 알려주시면 교환·환불 절차를 바로 도와드리겠습니다.",
	classifier.IntentGreeting:  "안녕하세요! 아로마 테라피에 대해 궁금한 점이 있으시면 편하게 물어봐 주세요.",
	classifier.IntentBooking:   "원데이 클래스와 공방 체험은 홈페이지 예약 페이지에서 신청하실 수 있어요. 원하시는 날짜를 알려주시겠어요?",
}

const fallbackReply = "죄송해요, 질문을 정확히 이해하지 못했어요. 제품, 예약, 배송 중 어떤 것이 궁금하신가요?"

const signupPrompt = "회원가입하시면 상담 내역이 저장되고 첫 구매 할인도 받으실 수 있어요!"

// Compose picks the canned reply for the classified intent. messageCount is
// the session's count including the current message; once it reaches the
// threshold, unclassifiable messages get the signup prompt appended.
func Compose(result classifier.Result, messageCount int) string {
	if reply, ok := replyTemplates[result.Intent]; ok {
		return reply
	}

	reply := fallbackReply
	if messageCount >= SignupPromptThreshold {
		reply += " " + signupPrompt
	}
	return reply
}
