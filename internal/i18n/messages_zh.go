package i18n

import "golang.org/x/text/message"

func init() {
	lang := TraditionalChinese

	// Scanner
	message.SetString(lang, "scan.title", "QRCode 報到掃描")
	message.SetString(lang, "scan.credential", "DEAuth 認證碼")
	message.SetString(lang, "scan.idle", "按 [s] 開始掃描")
	message.SetString(lang, "scan.acquiring", "正在開啟相機...")
	message.SetString(lang, "scan.scanning", "正在掃描QRCode...")
	message.SetString(lang, "scan.detected", "✓ 掃描成功 ID: %s")
	message.SetString(lang, "scan.verifying", "正在呼叫API...")
	message.SetString(lang, "scan.succeeded", "✓ API呼叫成功，準備跳轉...")
	message.SetString(lang, "scan.recovering", "%s 後可重新掃描")
	message.SetString(lang, "scan.locked", "掃描中無法變更設定")
	message.SetString(lang, "scan.settings_saved", "設定已儲存")

	message.SetString(lang, "error.format", "✗ 格式錯誤 應為：最長10碼任意文字可包含符號;固定16碼英數字 掃描到: %s")
	message.SetString(lang, "error.format.hint", "格式不符，請重新開始掃描")
	message.SetString(lang, "error.credential", "請先輸入DEAuth認證碼")
	message.SetString(lang, "error.credential.hint", "請輸入認證碼後重新掃描")
	message.SetString(lang, "error.already", "✗ 已經報到，不可重複報到")
	message.SetString(lang, "error.already.hint", "已經報到，請重新掃描其他QRCode")
	message.SetString(lang, "error.not_found", "✗ %s")
	message.SetString(lang, "error.api", "API呼叫失敗 (HTTP %d)")
	message.SetString(lang, "error.network", "✗ 網路錯誤: %s")
	message.SetString(lang, "error.network.hint", "網路錯誤，請重新開始")
	message.SetString(lang, "error.camera", "無法存取相機: %s")

	// Settings
	message.SetString(lang, "settings.title", "掃描設定")
	message.SetString(lang, "settings.profile", "效能模式")
	message.SetString(lang, "settings.resolution", "解析度")
	message.SetString(lang, "settings.fps", "影格率")
	message.SetString(lang, "settings.speed", "掃描速度")
	message.SetString(lang, "settings.scale", "解碼縮放")
	message.SetString(lang, "settings.region", "掃描區域")
	message.SetString(lang, "settings.speed.1", "快速")
	message.SetString(lang, "settings.speed.2", "一般")
	message.SetString(lang, "settings.speed.3", "省電")

	// Confirm
	message.SetString(lang, "confirm.title", "報到確認")
	message.SetString(lang, "confirm.loading", "載入報到資料中...")
	message.SetString(lang, "confirm.no_data", "查無報到資料")
	message.SetString(lang, "confirm.invalid", "資料錯誤，無法完成報到")
	message.SetString(lang, "confirm.no_signature", "缺少認證資訊，請重新掃描")
	message.SetString(lang, "confirm.prompt", "請確認已收費，並允許報到 [y/n]")
	message.SetString(lang, "confirm.processing", "處理中...")
	message.SetString(lang, "confirm.done", "報到確認完成！")
	message.SetString(lang, "confirm.failed", "報到失敗：%s")
	message.SetString(lang, "confirm.network", "網路錯誤，報到失敗")
	message.SetString(lang, "confirm.retry", "[y] 重試 [n] 返回")
	message.SetString(lang, "field.id", "編號")
	message.SetString(lang, "field.chinese_name", "中文姓名")
	message.SetString(lang, "field.english_name", "英文姓名")
	message.SetString(lang, "field.type", "身分")
	message.SetString(lang, "field.department", "部門")
	message.SetString(lang, "field.vegetarian", "素食")
	message.SetString(lang, "field.lottery", "抽獎資格")
	message.SetString(lang, "badge.yes", "是")
	message.SetString(lang, "badge.no", "否")

	// Direct input
	message.SetString(lang, "direct.title", "手動輸入報到")
	message.SetString(lang, "direct.prompt", "員工編號")
	message.SetString(lang, "direct.empty", "請輸入員工編號")
	message.SetString(lang, "direct.missing", "缺少認證資訊，請回到掃描頁面輸入DEAuth認證碼")
	message.SetString(lang, "direct.loading", "⌛ 正在查詢員工資料...")
	message.SetString(lang, "direct.already", "✗ 已經報到，不可重複報到")
	message.SetString(lang, "direct.success", "✓ 查詢成功，準備跳轉...")
	message.SetString(lang, "direct.network", "✗ 網路錯誤: %s")

	// Admin
	message.SetString(lang, "admin.title", "管理功能")
	message.SetString(lang, "admin.no_show", "寄送未報到清單")
	message.SetString(lang, "admin.summary", "寄送參與名單")
	message.SetString(lang, "admin.confirm.no_show", "確定要寄送未報到清單嗎？ [y/n]")
	message.SetString(lang, "admin.confirm.summary", "確定要寄送參與名單嗎？ [y/n]")
	message.SetString(lang, "admin.missing", "✗ 缺少DEAuth認證碼，請回掃描頁輸入")
	message.SetString(lang, "admin.calling", "⌛ 正在呼叫API...")
	message.SetString(lang, "admin.ok", "✓ 成功")
	message.SetString(lang, "admin.failed", "✗ 失敗")
	message.SetString(lang, "admin.network", "✗ 網路錯誤")

	// Chrome
	message.SetString(lang, "menu.scanner", "掃描")
	message.SetString(lang, "menu.direct", "手動輸入")
	message.SetString(lang, "menu.admin", "管理")
	message.SetString(lang, "menu.demo", "展示模式")
	message.SetString(lang, "history.title", "最近結果")
	message.SetString(lang, "history.empty", "尚無紀錄")
	message.SetString(lang, "alert.ack", "按 [enter] 關閉")
	message.SetString(lang, "help.scanner", "[s]開始/停止 [tab]切換焦點 [↑↓←→]設定 [ctrl+s]儲存 [enter]確認 [F2]手動 [F3]管理 [q]離開")
	message.SetString(lang, "help.confirm", "[y]確認報到 [n/esc]返回")
	message.SetString(lang, "help.direct", "[enter]查詢 [esc]返回")
	message.SetString(lang, "help.admin", "[1]未報到清單 [2]參與名單 [esc]返回")
}
