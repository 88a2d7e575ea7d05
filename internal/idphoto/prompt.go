package idphoto

import (
	"fmt"
	"strings"
)

const roleFraming = "Bạn là một chuyên gia chỉnh sửa ảnh thẻ. Nhiệm vụ của bạn là chỉnh sửa hình ảnh được cung cấp theo các yêu cầu sau."

// PreservationDirective is included verbatim in every prompt.
const PreservationDirective = "**QUY TẮC QUAN TRỌNG NHẤT: BẢO TOÀN TUYỆT ĐỐI KHUÔN MẶT, TÓC VÀ ĐẦU.**\n" +
	"Khi thực hiện bất kỳ thay đổi nào, bạn PHẢI giữ nguyên 100% khuôn mặt, nét mặt, kiểu tóc (từng sợi tóc), màu da và hình dạng đầu của người trong ảnh gốc. " +
	"Không được thay đổi danh tính của người đó. Sự tương đồng về khuôn mặt phải là tuyệt đối. " +
	"Chỉ thay đổi quần áo và phần vai nếu cần để khớp với trang phục mới."

// WhiteBackgroundWarning follows the preservation directive when the
// background is white.
const WhiteBackgroundWarning = "**YÊU CẦU CỰC KỲ QUAN TRỌNG VỚI NỀN TRẮNG:** Việc bảo toàn đường viền tóc và khuôn mặt là ưu tiên cao nhất. " +
	"Phải cực kỳ cẩn thận để không làm thay đổi, làm mờ hay cắt mất bất kỳ phần nào của tóc hoặc khuôn mặt khi thay nền. " +
	"Đảm bảo mọi sợi tóc đều được giữ lại và trông tự nhiên trên nền trắng."

// AoDaiWhiteBackgroundClause is appended to the ao dai instruction on a white
// background so the garment does not melt into it.
const AoDaiWhiteBackgroundClause = "Quan trọng: Vì phông nền cũng là màu trắng, hãy đảm bảo có sự tách biệt rõ ràng giữa áo dài trắng và phông nền. " +
	"Bạn có thể sử dụng bóng đổ rất tinh tế hoặc một đường viền mờ để áo không bị hòa lẫn vào nền, " +
	"nhưng tuyệt đối không được làm thay đổi khuôn mặt, cổ hoặc đường viền tóc của người trong ảnh."

// OutputDirective is always the last numbered requirement.
const OutputDirective = "**Đầu Ra:** Chỉ trả về hình ảnh đã được chỉnh sửa. Không trả về bất kỳ văn bản hay giải thích nào."

const enhancementHeading = "**Cải Thiện Chân Dung:**"

const (
	attireOriginal = "Giữ nguyên trang phục gốc của người trong ảnh. Nếu cần, hãy làm cho nó trông gọn gàng và chuyên nghiệp hơn, nhưng không thay đổi loại trang phục."
	attireShirt    = "Thay trang phục hiện tại của người trong ảnh bằng một chiếc áo sơ mi trắng hiện đại, có cổ, trông gọn gàng và chuyên nghiệp. Kiểu dáng nên đẹp và hợp thời trang, phù hợp cho cả nam và nữ."
	attireSuit     = "Thay trang phục hiện tại của người trong ảnh bằng một bộ vest công sở lịch sự (màu tối như xanh navy hoặc xám đậm) với áo sơ mi trắng bên trong. Trang phục phải trông chuyên nghiệp, phù hợp với tiêu chuẩn ảnh thẻ."
	attireAoDai    = "Thay trang phục hiện tại của người trong ảnh bằng một chiếc áo dài trắng truyền thống của Việt Nam. Áo dài phải có cổ cao, trông thanh lịch, trang trọng và chuyên nghiệp, phù hợp với tiêu chuẩn ảnh thẻ."
	attireFallback = "Giữ nguyên trang phục gốc của người trong ảnh."
)

const (
	enhanceBeautify = "Làm đẹp ảnh tổng thể một cách tự nhiên, tăng độ sắc nét và cân bằng màu sắc."
	enhanceSmooth   = "Làm mịn da một cách tinh tế, che đi các khuyết điểm nhỏ nhưng vẫn giữ được cấu trúc da tự nhiên."
	enhanceMakeup   = "Áp dụng một lớp trang điểm nhẹ nhàng, chuyên nghiệp, bao gồm làm đều màu da, một chút son môi màu tự nhiên và kẻ mắt mỏng để đôi mắt trông to và rõ hơn."
)

const qualityInstruction = "**Chất Lượng & Ánh Sáng:** Nâng cao chất lượng ảnh. Đảm bảo khuôn mặt được chiếu sáng đều, rõ nét, không bị mờ, không có bóng đổ. " +
	"Mắt phải nhìn thẳng vào máy ảnh. Toàn bộ ảnh phải đạt tiêu chuẩn nghiêm ngặt của ảnh hộ chiếu."

// AttireInstruction is the clothing part of the prompt for the chosen attire.
func AttireInstruction(attire Attire, background Background) string {
	switch attire {
	case AttireShirt:
		return attireShirt
	case AttireSuit:
		return attireSuit
	case AttireAoDai:
		if background == BackgroundWhite {
			return attireAoDai + " " + AoDaiWhiteBackgroundClause
		}
		return attireAoDai
	case AttireOriginal:
		return attireOriginal
	default:
		return attireFallback
	}
}

// EnhancementInstructions returns the enabled clauses in the fixed order
// beautify, smooth skin, makeup.
func EnhancementInstructions(e Enhancements) []string {
	var out []string
	if e.Beautify {
		out = append(out, enhanceBeautify)
	}
	if e.SmoothSkin {
		out = append(out, enhanceSmooth)
	}
	if e.Makeup {
		out = append(out, enhanceMakeup)
	}
	return out
}

// CompilePrompt turns the selected options into the edit instruction sent to
// the image model. It is deterministic and has no failure mode.
func CompilePrompt(opts Options) string {
	var b strings.Builder
	b.Grow(4096)

	b.WriteString(roleFraming + "\n")
	b.WriteString(PreservationDirective)
	if opts.Background == BackgroundWhite {
		b.WriteString("\n" + WhiteBackgroundWarning)
	}
	b.WriteString("\n\n**Yêu cầu chi tiết:**\n")

	items := []string{
		"**Phông Nền:** Chuyển nền thành " + opts.Background.Descriptor() + ".",
		"**Cắt & Tỷ Lệ:** Cắt ảnh theo tỷ lệ " + opts.Size.Descriptor() + " (chiều cao lớn hơn chiều rộng). " +
			"Căn chỉnh đầu, vai và thân trên của người trong ảnh một cách chuyên nghiệp để phù hợp với tiêu chuẩn ảnh thẻ.",
		"**Trang Phục:** " + AttireInstruction(opts.Attire, opts.Background),
		qualityInstruction,
	}
	if enh := EnhancementInstructions(opts.Enhancements); len(enh) > 0 {
		items = append(items, enhancementHeading+"\n- "+strings.Join(enh, "\n- "))
	}
	items = append(items, OutputDirective)

	for i, item := range items {
		fmt.Fprintf(&b, "%d.  %s\n", i+1, item)
	}

	return strings.TrimSpace(b.String())
}
