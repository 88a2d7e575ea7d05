package i18n

type Key string

const (
	MsgInvalidImage       Key = "invalid_image"
	MsgMissingImage       Key = "missing_image"
	MsgInvalidOption      Key = "invalid_option"
	MsgNoImage            Key = "no_image"
	MsgNoImagePlaceholder Key = "no_image_placeholder"
	MsgTransport          Key = "transport"
	MsgUnknown            Key = "unknown"

	MsgBotWelcome        Key = "bot_welcome"
	MsgBotHelp           Key = "bot_help"
	MsgBotUnknownCommand Key = "bot_unknown_command"
	MsgBotSendPhoto      Key = "bot_send_photo"
	MsgBotPhotoSaved     Key = "bot_photo_saved"
	MsgBotAlbumFirstOnly Key = "bot_album_first_only"
	MsgBotNotYourMenu    Key = "bot_not_your_menu"
	MsgBotBusy           Key = "bot_busy"
	MsgBotGenerating     Key = "bot_generating"
	MsgBotDownloadFailed Key = "bot_download_failed"
	MsgBotDone           Key = "bot_done"
	MsgBotReset          Key = "bot_reset"
	MsgBotPromptSent     Key = "bot_prompt_sent"

	LabelTitle      Key = "label_title"
	LabelSize       Key = "label_size"
	LabelBackground Key = "label_background"
	LabelAttire     Key = "label_attire"
	LabelEnhance    Key = "label_enhance"
	LabelPhoto      Key = "label_photo"
	LabelPhotoNone  Key = "label_photo_none"
	LabelPhotoSaved Key = "label_photo_saved"
	LabelGenerate   Key = "label_generate"
	LabelPrompt     Key = "label_prompt"
	LabelReset      Key = "label_reset"

	LabelBgWhite        Key = "label_bg_white"
	LabelBgBlue         Key = "label_bg_blue"
	LabelAttireOriginal Key = "label_attire_original"
	LabelAttireShirt    Key = "label_attire_shirt"
	LabelAttireSuit     Key = "label_attire_suit"
	LabelAttireAoDai    Key = "label_attire_aodai"
	LabelBeautify       Key = "label_beautify"
	LabelSmoothSkin     Key = "label_smooth_skin"
	LabelMakeup         Key = "label_makeup"
)

var messages = map[Lang]map[Key]string{
	Vietnamese: {
		MsgInvalidImage:       "Vui lòng chọn một tệp hình ảnh hợp lệ (JPEG, PNG, v.v.).",
		MsgMissingImage:       "Vui lòng chọn một hình ảnh để bắt đầu.",
		MsgInvalidOption:      "Tùy chọn không hợp lệ: %s",
		MsgNoImage:            "Không thể tạo ảnh. Phản hồi từ AI: %s",
		MsgNoImagePlaceholder: "Không nhận được ảnh hợp lệ.",
		MsgTransport:          "Đã xảy ra lỗi khi giao tiếp với dịch vụ AI. Vui lòng thử lại.",
		MsgUnknown:            "Đã xảy ra lỗi không xác định.",

		MsgBotWelcome: "📸 Trình Chỉnh Sửa Ảnh Thẻ AI\n\n" +
			"Gửi một ảnh chân dung để tạo ảnh thẻ chuyên nghiệp chỉ trong vài giây.\n\n" +
			"Lệnh:\n" +
			"/start - Bắt đầu\n" +
			"/help - Trợ giúp\n" +
			"/reset - Bắt đầu lại",
		MsgBotHelp: "📸 Trợ giúp\n\n" +
			"1. Gửi ảnh chân dung (có thể kèm chú thích, ví dụ: 4x6 trắng vest).\n" +
			"2. Chọn kích cỡ, phông nền, trang phục và cải thiện.\n" +
			"3. Nhấn \"Tạo Ảnh Thẻ\".\n" +
			"/reset - đặt lại tùy chọn.",
		MsgBotUnknownCommand: "❌ Lệnh không xác định. Dùng /help.",
		MsgBotSendPhoto:      "📷 Vui lòng gửi một ảnh chân dung để bắt đầu.",
		MsgBotPhotoSaved:     "✅ Đã nhận ảnh. Chọn tùy chỉnh rồi nhấn \"Tạo Ảnh Thẻ\".",
		MsgBotAlbumFirstOnly: "ℹ️ Chỉ ảnh đầu tiên trong album được sử dụng.",
		MsgBotNotYourMenu:    "Menu này không dành cho bạn.",
		MsgBotBusy:           "⏳ Ảnh trước vẫn đang được xử lý, vui lòng chờ.",
		MsgBotGenerating:     "AI đang tạo ảnh của bạn...",
		MsgBotDownloadFailed: "❌ Không tải được ảnh gốc. Vui lòng gửi lại.",
		MsgBotDone:           "✅ Ảnh thẻ của bạn đã sẵn sàng!",
		MsgBotReset:          "🔄 Đã đặt lại. Gửi ảnh mới để bắt đầu.",
		MsgBotPromptSent:     "Đang gửi prompt…",

		LabelTitle:      "📸 Ảnh Thẻ AI",
		LabelSize:       "Kích Cỡ",
		LabelBackground: "Phông Nền",
		LabelAttire:     "Trang Phục",
		LabelEnhance:    "Cải Thiện",
		LabelPhoto:      "Ảnh",
		LabelPhotoNone:  "(chưa có)",
		LabelPhotoSaved: "đã lưu ✅",
		LabelGenerate:   "✨ Tạo Ảnh Thẻ",
		LabelPrompt:     "📄 Prompt",
		LabelReset:      "🔄 Bắt đầu lại",

		LabelBgWhite:        "Nền Trắng",
		LabelBgBlue:         "Nền Xanh",
		LabelAttireOriginal: "Giữ Trang Phục Gốc",
		LabelAttireShirt:    "Sơ Mi Thời Trang",
		LabelAttireSuit:     "Vest Công Sở",
		LabelAttireAoDai:    "Áo Dài",
		LabelBeautify:       "Làm đẹp ảnh",
		LabelSmoothSkin:     "Làm mịn da",
		LabelMakeup:         "Trang điểm nhẹ nhàng",
	},
	English: {
		MsgInvalidImage:       "Please choose a valid image file (JPEG, PNG, etc.).",
		MsgMissingImage:       "Please choose an image to get started.",
		MsgInvalidOption:      "Invalid option: %s",
		MsgNoImage:            "Could not create the photo. AI response: %s",
		MsgNoImagePlaceholder: "No valid image was received.",
		MsgTransport:          "Something went wrong while talking to the AI service. Please try again.",
		MsgUnknown:            "An unknown error occurred.",

		MsgBotWelcome: "📸 AI ID Photo Editor\n\n" +
			"Send a portrait photo to get a professional ID photo in seconds.\n\n" +
			"Commands:\n" +
			"/start - Start\n" +
			"/help - Help\n" +
			"/reset - Start over",
		MsgBotHelp: "📸 Help\n\n" +
			"1. Send a portrait (an optional caption works too, e.g. 4x6 white suit).\n" +
			"2. Pick size, background, attire and enhancements.\n" +
			"3. Press \"Create ID photo\".\n" +
			"/reset - restore default options.",
		MsgBotUnknownCommand: "❌ Unknown command. Use /help.",
		MsgBotSendPhoto:      "📷 Please send a portrait photo to begin.",
		MsgBotPhotoSaved:     "✅ Photo received. Pick your options and press \"Create ID photo\".",
		MsgBotAlbumFirstOnly: "ℹ️ Only the first photo of the album is used.",
		MsgBotNotYourMenu:    "This menu is not for you.",
		MsgBotBusy:           "⏳ Your previous photo is still being processed, please wait.",
		MsgBotGenerating:     "The AI is creating your photo...",
		MsgBotDownloadFailed: "❌ Could not download the source photo. Please send it again.",
		MsgBotDone:           "✅ Your ID photo is ready!",
		MsgBotReset:          "🔄 Reset done. Send a new photo to start.",
		MsgBotPromptSent:     "Sending prompt…",

		LabelTitle:      "📸 AI ID Photo",
		LabelSize:       "Size",
		LabelBackground: "Background",
		LabelAttire:     "Attire",
		LabelEnhance:    "Enhancements",
		LabelPhoto:      "Photo",
		LabelPhotoNone:  "(none)",
		LabelPhotoSaved: "saved ✅",
		LabelGenerate:   "✨ Create ID photo",
		LabelPrompt:     "📄 Prompt",
		LabelReset:      "🔄 Start over",

		LabelBgWhite:        "White",
		LabelBgBlue:         "Blue",
		LabelAttireOriginal: "Keep original",
		LabelAttireShirt:    "White shirt",
		LabelAttireSuit:     "Office suit",
		LabelAttireAoDai:    "Ao dai",
		LabelBeautify:       "Beautify",
		LabelSmoothSkin:     "Smooth skin",
		LabelMakeup:         "Light makeup",
	},
}
