package i18n

var builtin = map[Language]map[string]string{
	Indonesian: {
		"dashboard":              "Dasbor",
		"triage":                 "Triase AI",
		"consultation":           "Konsultasi",
		"emr":                    "Rekam Medis",
		"monitoring":             "Pemantauan",
		"prescriptions":          "Resep",
		"welcome":                "Selamat datang,",
		"new_consult":            "Konsultasi Baru",
		"health_score":           "Skor Kesehatan",
		"status":                 "Status",
		"meds":                   "Obat",
		"meds_active":            "Aktif",
		"alerts":                 "Peringatan",
		"alerts_none":            "Tidak ada",
		"request_timeout":        "Permintaan terlalu lama diproses. Silakan coba lagi.",
		"ai_triage_description":  "Jelaskan gejala Anda dan AI kami akan menilai tingkat urgensinya.",
		"symptoms_label":         "Gejala",
		"analyze_btn":            "Analisis Gejala",
		"analysis_summary":       "Ringkasan Analisis",
		"analysis_failed":        "Gagal menganalisis gejala. Silakan coba lagi.",
		"recommended_specialist": "Spesialis yang Direkomendasikan",
		"proceed_booking":        "Lanjutkan ke Konsultasi",
		"start_consult":          "Mulai Konsultasi",
		"consult_greeting":       "Halo! Ada yang bisa saya bantu hari ini?",
		"soap_subjective":        "Subjektif",
		"soap_objective":         "Objektif",
		"soap_assessment":        "Penilaian",
		"soap_plan":              "Rencana",
		"save_records":           "Simpan Rekam Medis",
		"soap_saved":             "Catatan SOAP tersimpan.",
		"switch_role":            "Beralih ke",
		"vitals_logged":          "Tanda vital berhasil dicatat!",
		"bp_spike_title":         "Peringatan Mendesak: Lonjakan Tekanan Darah",
	},
	English: {
		"dashboard":              "Dashboard",
		"triage":                 "AI Triage",
		"consultation":           "Consultation",
		"emr":                    "Medical Records",
		"monitoring":             "Monitoring",
		"prescriptions":          "Prescriptions",
		"welcome":                "Welcome,",
		"new_consult":            "New Consultation",
		"health_score":           "Health Score",
		"status":                 "Status",
		"meds":                   "Medications",
		"meds_active":            "Active",
		"alerts":                 "Alerts",
		"alerts_none":            "None",
		"request_timeout":        "The request took too long. Please try again.",
		"ai_triage_description":  "Describe your symptoms and our AI will assess how urgent they are.",
		"symptoms_label":         "Symptoms",
		"analyze_btn":            "Analyze Symptoms",
		"analysis_summary":       "Analysis Summary",
		"analysis_failed":        "Failed to analyze symptoms. Please try again.",
		"recommended_specialist": "Recommended Specialist",
		"proceed_booking":        "Proceed to Consultation",
		"start_consult":          "Start Consultation",
		"consult_greeting":       "Hello! How can I help you today?",
		"soap_subjective":        "Subjective",
		"soap_objective":         "Objective",
		"soap_assessment":        "Assessment",
		"soap_plan":              "Plan",
		"save_records":           "Save Records",
		"soap_saved":             "SOAP Saved.",
		"switch_role":            "Switch to",
		"vitals_logged":          "Vitals logged successfully!",
		"bp_spike_title":         "Urgent Alert: BP Spike Detected",
	},
	Japanese: {
		"dashboard":              "ダッシュボード",
		"triage":                 "AIトリアージ",
		"consultation":           "オンライン診療",
		"emr":                    "電子カルテ",
		"monitoring":             "モニタリング",
		"prescriptions":          "処方箋",
		"welcome":                "ようこそ、",
		"new_consult":            "新規診療",
		"health_score":           "健康スコア",
		"status":                 "ステータス",
		"meds":                   "服薬",
		"meds_active":            "服用中",
		"alerts":                 "アラート",
		"alerts_none":            "なし",
		"request_timeout":        "リクエストの処理に時間がかかりすぎました。もう一度お試しください。",
		"symptoms_label":         "症状",
		"analyze_btn":            "症状を分析",
		"analysis_summary":       "分析結果",
		"analysis_failed":        "症状の分析に失敗しました。もう一度お試しください。",
		"recommended_specialist": "推奨される専門医",
		"proceed_booking":        "診療へ進む",
		"start_consult":          "診療を開始",
		"consult_greeting":       "こんにちは。今日はどうされましたか？",
		"save_records":           "記録を保存",
		"switch_role":            "切り替え:",
	},
	Korean: {
		"dashboard":              "대시보드",
		"triage":                 "AI 분류",
		"consultation":           "원격 진료",
		"emr":                    "전자 의무기록",
		"monitoring":             "모니터링",
		"prescriptions":          "처방전",
		"welcome":                "환영합니다,",
		"new_consult":            "새 진료",
		"health_score":           "건강 점수",
		"status":                 "상태",
		"meds":                   "복약",
		"meds_active":            "복용 중",
		"alerts":                 "알림",
		"alerts_none":            "없음",
		"request_timeout":        "요청 처리 시간이 초과되었습니다. 다시 시도해 주세요.",
		"symptoms_label":         "증상",
		"analyze_btn":            "증상 분석",
		"analysis_summary":       "분석 요약",
		"analysis_failed":        "증상 분석에 실패했습니다. 다시 시도해 주세요.",
		"recommended_specialist": "추천 전문의",
		"proceed_booking":        "진료로 이동",
		"start_consult":          "진료 시작",
		"consult_greeting":       "안녕하세요! 오늘 무엇을 도와드릴까요?",
		"save_records":           "기록 저장",
	},
}
