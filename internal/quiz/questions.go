package quiz

import (
	"fmt"

	"security-quiz/internal/models"
)

// questionBank is the fixed security-awareness question set shown to every
// employee, in order. Edit at compile time only; ValidateBank runs at boot.
var questionBank = []models.Question{
	{
		Text: "ما هو التصيد الاحتيالي (Phishing)؟",
		Options: []string{
			"نوع من أنواع الرياضة البحرية",
			"محاولة سرقة معلومات حساسة عبر رسائل مزيفة",
			"برنامج لحماية البريد الإلكتروني",
			"طريقة لتسريع الإنترنت",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "ما هي أفضل طريقة لإنشاء كلمة مرور قوية؟",
		Options: []string{
			"استخدام تاريخ الميلاد",
			"استخدام اسم الشركة",
			"مزيج من الأحرف الكبيرة والصغيرة والأرقام والرموز",
			"استخدام كلمة \"password\"",
		},
		CorrectAnswer: 2,
	},
	{
		Text: "يجب مشاركة كلمة المرور مع زملاء العمل لتسهيل إنجاز المهام",
		Options: []string{
			"صحيح",
			"خطأ",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "ماذا تفعل إذا استلمت بريداً إلكترونياً مشبوهاً من مرسل غير معروف؟",
		Options: []string{
			"فتح المرفقات للتأكد من محتواها",
			"الرد على الرسالة بالاستفسار",
			"عدم فتح المرفقات والإبلاغ عنها لقسم تقنية المعلومات",
			"إعادة توجيهها للزملاء للتحذير",
		},
		CorrectAnswer: 2,
	},
	{
		Text: "ما هي المصادقة الثنائية (Two-Factor Authentication)؟",
		Options: []string{
			"استخدام كلمتي مرور مختلفتين",
			"طبقة حماية إضافية تتطلب رمز تحقق بجانب كلمة المرور",
			"تسجيل الدخول من جهازين",
			"مشاركة الحساب مع شخص آخر",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "يمكن ترك جهاز الكمبيوتر مفتوحاً دون قفل الشاشة عند مغادرة المكتب لفترة قصيرة",
		Options: []string{
			"صحيح",
			"خطأ",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "ما هو برنامج الفدية (Ransomware)؟",
		Options: []string{
			"برنامج يشفر الملفات ويطالب بمبلغ مالي لفك التشفير",
			"برنامج مجاني لمكافحة الفيروسات",
			"أداة للنسخ الاحتياطي",
			"تطبيق لإدارة كلمات المرور",
		},
		CorrectAnswer: 0,
	},
	{
		Text: "أي من التالي يعتبر ممارسة آمنة عند استخدام شبكات Wi-Fi العامة؟",
		Options: []string{
			"إجراء المعاملات البنكية مباشرة",
			"استخدام شبكة افتراضية خاصة (VPN)",
			"مشاركة الملفات مع الأجهزة المجاورة",
			"حفظ كلمات المرور في المتصفح",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "ماذا تفعل عند العثور على وحدة تخزين USB مجهولة في مكان العمل؟",
		Options: []string{
			"توصيلها بجهاز العمل لمعرفة محتواها",
			"أخذها للمنزل وفحصها هناك",
			"تسليمها لقسم تقنية المعلومات دون توصيلها بأي جهاز",
			"رميها في سلة المهملات",
		},
		CorrectAnswer: 2,
	},
	{
		Text: "الهندسة الاجتماعية (Social Engineering) هي خداع الأشخاص للحصول على معلومات سرية",
		Options: []string{
			"صحيح",
			"خطأ",
		},
		CorrectAnswer: 0,
	},
	{
		Text: "كم مرة يُنصح بتحديث أنظمة التشغيل والبرامج؟",
		Options: []string{
			"مرة واحدة في السنة",
			"عند صدور التحديثات الأمنية فوراً",
			"لا حاجة للتحديث إذا كان الجهاز يعمل بشكل جيد",
			"كل خمس سنوات",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "أي من التالي يعتبر معلومات حساسة يجب حمايتها؟",
		Options: []string{
			"بيانات العملاء المالية",
			"أخبار الشركة المنشورة",
			"عنوان الموقع الإلكتروني للشركة",
			"أوقات الدوام الرسمية",
		},
		CorrectAnswer: 0,
	},
	{
		Text: "يجوز إرسال ملفات العمل السرية إلى البريد الإلكتروني الشخصي لإكمال العمل من المنزل",
		Options: []string{
			"صحيح",
			"خطأ",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "ما هو الإجراء الصحيح عند الاشتباه في اختراق حسابك؟",
		Options: []string{
			"الانتظار لمعرفة ما سيحدث",
			"تغيير كلمة المرور فوراً وإبلاغ قسم تقنية المعلومات",
			"حذف الحساب نهائياً",
			"إخبار الزملاء فقط",
		},
		CorrectAnswer: 1,
	},
	{
		Text: "أي من التالي علامة على رسالة تصيد احتيالي؟",
		Options: []string{
			"طلب عاجل لتحديث بيانات الحساب عبر رابط",
			"رسالة من زميل معروف بخصوص اجتماع",
			"نشرة الشركة الشهرية",
			"تأكيد حجز قمت به بنفسك",
		},
		CorrectAnswer: 0,
	},
}

// Questions returns the full ordered bank.
func Questions() []models.Question {
	return questionBank
}

// TotalQuestions is used by exports for the "x/N" score strings.
func TotalQuestions() int {
	return len(questionBank)
}

// ValidateBank checks every question has at least two options and an
// in-range correct index. Called once from main; a bad bank is fatal.
func ValidateBank(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question bank is empty")
	}
	for i, q := range questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d has %d options, need at least 2", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d has correct answer index %d out of range", i, q.CorrectAnswer)
		}
	}
	return nil
}
