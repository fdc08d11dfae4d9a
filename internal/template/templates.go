package template

import "meditour_admin/internal/i18n"

type Kind string

const (
	KindGuide        Kind = "guide"
	KindConfirmation Kind = "confirmation"
	KindCancellation Kind = "cancellation"
)

// SectionMarkers are the literal strings the section-override pass anchors
// on. They are part of the template data, per locale; overrides must work in
// every supported language, not just Korean.
type SectionMarkers struct {
	IntroStart      string // first sentence of the replaceable intro block
	DepositSentence string // intro block ends right before this sentence
	DetailsHeader   string
	NotesHeader     string
}

// LocaleTemplates bundles the base text for one locale. Only the guide
// template participates in section overrides.
type LocaleTemplates struct {
	Guide         string
	Confirmation  string
	Cancellation  string
	Markers       SectionMarkers
	DefaultButton string
}

// Set is the static, read-only template table handed to the engine at
// construction. Tests inject fixture sets; production uses DefaultSet.
type Set struct {
	byLocale map[i18n.Locale]LocaleTemplates
}

func NewSet(m map[i18n.Locale]LocaleTemplates) Set {
	return Set{byLocale: m}
}

func (s Set) forLocale(l i18n.Locale) LocaleTemplates {
	if t, ok := s.byLocale[l]; ok {
		return t
	}
	return s.byLocale[i18n.KoKR]
}

const koGuide = `안녕하세요, {hospitalName}입니다.
예약 신청이 접수되어 안내드립니다.
아래 내용을 확인하신 후 기한 내에 예약금을 입금해 주세요.
예약금 입금이 확인되면 예약이 확정됩니다.

[ 예약 정보 ]
- 시술명: {procedureName}
- 일시: {date} ({dayOfWeek}) {time}
- 예약금: {amount} ({currency})
- 입금 기한: {deadline}

[ 유의사항 ]
- 예약금은 시술 비용에서 차감됩니다.
- 기한 내 입금이 확인되지 않으면 예약이 취소될 수 있습니다.
- 예약 변경 및 취소는 본 채팅으로 문의해 주세요.`

const koConfirmation = `{hospitalName} 예약이 확정되었습니다.

[ 예약 정보 ]
- 시술명: {procedureName}
- 일시: {date} ({dayOfWeek}) {time}

예약 당일 여권을 지참해 주세요. 감사합니다.`

const koCancellation = `{hospitalName} 예약이 취소되었습니다.

- 시술명: {procedureName}
- 일시: {date} ({dayOfWeek}) {time}
{reason}
예약금을 입금하신 경우 영업일 기준 3~5일 내 환불됩니다.`

const enGuide = `Hello, this is {hospitalName}.
Thank you for your reservation request.
Please review the details below and complete the deposit payment by the due date.
The deposit confirms your reservation.

[ Details ]
- Procedure: {procedureName}
- Date: {date} ({dayOfWeek}) {time}
- Deposit: {amount} ({currency})
- Payment due: {deadline}

[ Important Notes ]
- The deposit is deducted from the final procedure cost.
- If payment is not received by the due date, the reservation may be released.
- To change or cancel, please contact us through this chat.`

const enConfirmation = `Your reservation at {hospitalName} is confirmed.

[ Details ]
- Procedure: {procedureName}
- Date: {date} ({dayOfWeek}) {time}

Please bring your passport on the day of your visit. Thank you.`

const enCancellation = `Your reservation at {hospitalName} has been cancelled.

- Procedure: {procedureName}
- Date: {date} ({dayOfWeek}) {time}
{reason}
If you already paid the deposit, it will be refunded within 3-5 business days.`

const thGuide = `สวัสดีค่ะ ทางโรงพยาบาล {hospitalName} ค่ะ
ขอบคุณที่ส่งคำขอจองเข้ามานะคะ
กรุณาตรวจสอบรายละเอียดด้านล่างและชำระเงินมัดจำภายในกำหนดค่ะ
เมื่อยืนยันการชำระเงินมัดจำแล้ว การจองจะได้รับการยืนยันค่ะ

[ รายละเอียดการจอง ]
- หัตถการ: {procedureName}
- วันเวลา: {date} ({dayOfWeek}) {time}
- เงินมัดจำ: {amount} ({currency})
- ชำระภายใน: {deadline}

[ ข้อควรทราบ ]
- เงินมัดจำจะถูกหักออกจากค่าหัตถการ
- หากไม่ชำระภายในกำหนด การจองอาจถูกยกเลิก
- หากต้องการเปลี่ยนแปลงหรือยกเลิก กรุณาติดต่อผ่านแชทนี้ค่ะ`

const thConfirmation = `การจองของคุณที่ {hospitalName} ได้รับการยืนยันแล้วค่ะ

[ รายละเอียดการจอง ]
- หัตถการ: {procedureName}
- วันเวลา: {date} ({dayOfWeek}) {time}

กรุณานำหนังสือเดินทางมาในวันนัดหมายด้วยนะคะ ขอบคุณค่ะ`

const thCancellation = `การจองของคุณที่ {hospitalName} ถูกยกเลิกแล้วค่ะ

- หัตถการ: {procedureName}
- วันเวลา: {date} ({dayOfWeek}) {time}
{reason}
หากชำระเงินมัดจำแล้ว จะได้รับเงินคืนภายใน 3-5 วันทำการค่ะ`

// DefaultSet returns the production template table.
func DefaultSet() Set {
	return NewSet(map[i18n.Locale]LocaleTemplates{
		i18n.KoKR: {
			Guide:        koGuide,
			Confirmation: koConfirmation,
			Cancellation: koCancellation,
			Markers: SectionMarkers{
				IntroStart:      "예약 신청이 접수되어 안내드립니다.",
				DepositSentence: "예약금 입금이 확인되면 예약이 확정됩니다.",
				DetailsHeader:   "[ 예약 정보 ]",
				NotesHeader:     "[ 유의사항 ]",
			},
			DefaultButton: "예약금 결제하기",
		},
		i18n.EnUS: {
			Guide:        enGuide,
			Confirmation: enConfirmation,
			Cancellation: enCancellation,
			Markers: SectionMarkers{
				IntroStart:      "Thank you for your reservation request.",
				DepositSentence: "The deposit confirms your reservation.",
				DetailsHeader:   "[ Details ]",
				NotesHeader:     "[ Important Notes ]",
			},
			DefaultButton: "Pay deposit",
		},
		i18n.ThTH: {
			Guide:        thGuide,
			Confirmation: thConfirmation,
			Cancellation: thCancellation,
			Markers: SectionMarkers{
				IntroStart:      "ขอบคุณที่ส่งคำขอจองเข้ามานะคะ",
				DepositSentence: "เมื่อยืนยันการชำระเงินมัดจำแล้ว การจองจะได้รับการยืนยันค่ะ",
				DetailsHeader:   "[ รายละเอียดการจอง ]",
				NotesHeader:     "[ ข้อควรทราบ ]",
			},
			DefaultButton: "ชำระเงินมัดจำ",
		},
	})
}
