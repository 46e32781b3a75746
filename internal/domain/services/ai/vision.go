package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"scamradar/pkg/logger"
)

// VisionVerdict is the parsed output of the vision judge.
type VisionVerdict struct {
	Label         string `json:"label"`
	Score         int    `json:"score"`
	Reason        string `json:"reason"`
	ExtractedText string `json:"extracted_text"`
}

// VisionJudge classifies screenshots of messages and websites via a
// vision-capable inference endpoint. On any failure it contributes nothing;
// the text-pattern path still applies.
type VisionJudge struct {
	client ChatClient
	logger *logger.Logger
}

// NewVisionJudge creates a new vision judge
func NewVisionJudge(client ChatClient, log *logger.Logger) *VisionJudge {
	return &VisionJudge{
		client: client,
		logger: log.WithComponent("vision-judge"),
	}
}

// Judge sends the image to the vision endpoint. ok is false when the
// endpoint is unavailable or the response is unparsable.
func (v *VisionJudge) Judge(ctx context.Context, imageData []byte) (VisionVerdict, bool) {
	if v.client == nil || len(imageData) == 0 {
		return VisionVerdict{}, false
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", detectMediaType(imageData), base64.StdEncoding.EncodeToString(imageData))
	response, err := v.client.Chat(ctx, []Message{NewImageMessage("user", visionPrompt, dataURL)})
	if err != nil {
		v.logger.Warn().Err(err).Msg("vision judge call failed")
		return VisionVerdict{}, false
	}

	var verdict VisionVerdict
	if !ExtractObject(response, &verdict) {
		v.logger.Warn().Msg("unparsable vision judge response")
		return VisionVerdict{}, false
	}
	if verdict.Score < 0 {
		verdict.Score = 0
	}
	if verdict.Score > 100 {
		verdict.Score = 100
	}
	return verdict, true
}

func detectMediaType(data []byte) string {
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}
	return "image/png"
}

const visionPrompt = `This is a screenshot of a message or website. Check it against common Vietnamese online scams:
- Money transfer requests (nhờ chuyển khoản, chuyển tiền gấp)
- Fake bank notices (tài khoản bị khóa, lỗi hệ thống ngân hàng)
- Prize scams (trúng thưởng, nhận quà miễn phí)
- Job scams (việc nhẹ lương cao, tuyển cộng tác viên)
- Investment/crypto fraud (lãi suất cao, cam kết lợi nhuận, forex)
- Gambling and betting sites (casino, nhà cái, nổ hũ)
- Credential phishing (yêu cầu OTP, mật khẩu, mã xác minh)
- Romance scams, impersonation of police/officials, loan-fee scams

If the content is ambiguous, score it high (70-90) rather than low; a missed scam warning costs more than a false caution.

Respond with JSON only:
{"label":"scam category or safe","score":0-100,"reason":"short explanation","extracted_text":"visible text in the image"}`
