package knowledge

// Corpus returns the built-in knowledge entries. The order matters: the
// ranker breaks score ties by corpus position, so more general entries are
// listed after the specific ones they could shadow.
func Corpus() []Entry {
	return []Entry{
		{
			ID:       "payment-security",
			Category: CategorySecurity,
			Keywords: []string{"güvende", "güvenli", "güvenlik", "ödeme güvenliği", "kredi kartı güvenli", "dolandırıcılık"},
			Question: "Bağışım güvende mi?",
			Answer: "Evet, bağışınız güvende. Tüm ödemeler 256-bit SSL şifrelemesi ile korunur ve " +
				"lisanslı ödeme kuruluşu üzerinden işlenir. Kart bilgileriniz hiçbir zaman sunucularımızda saklanmaz.",
			FollowUp: "Kabul edilen ödeme yöntemlerini görmek ister misiniz?",
			Priority: 9,
		},
		{
			ID:       "how-to-donate",
			Category: CategoryDonation,
			Keywords: []string{"nasıl bağış", "bağış yap", "destek ol", "nasıl destek", "bağışta bulun"},
			Question: "Nasıl bağış yapabilirim?",
			Answer: "Bir öğrencinin kampanya sayfasına girip \"Destek Ol\" butonuna tıklayarak bağış yapabilirsiniz. " +
				"Dilerseniz sohbet asistanından size uygun bir öğrenci önermesini de isteyebilirsiniz.",
			FollowUp: "Size uygun bir öğrenci bulmamı ister misiniz?",
			Priority: 9,
		},
		{
			ID:       "student-verification",
			Category: CategoryVerification,
			Keywords: []string{"doğrulama", "öğrenci belgesi", "onay süreci", "belge kontrol", "gerçek öğrenci"},
			Question: "Öğrenciler nasıl doğrulanıyor?",
			Answer: "Her öğrenci, e-Devlet üzerinden alınan güncel öğrenci belgesini yükler. Ekibimiz belgeyi " +
				"okulun kayıtlarıyla karşılaştırır; doğrulanamayan kampanyalar yayına alınmaz.",
			Priority: 9,
		},
		{
			ID:       "payment-methods",
			Category: CategoryPayment,
			Keywords: []string{"ödeme yöntem", "kredi kartı", "banka kartı", "havale", "eft", "hangi kart"},
			Question: "Hangi ödeme yöntemlerini kullanabilirim?",
			Answer: "Kredi kartı, banka kartı ve havale/EFT ile bağış yapabilirsiniz. " +
				"Kart ile yapılan bağışlar anında, havale bağışları banka onayından sonra kampanyaya yansır.",
			Priority: 8,
		},
		{
			ID:       "create-campaign",
			Category: CategoryCampaign,
			Keywords: []string{"kampanya oluştur", "kampanya aç", "nasıl kampanya", "kampanya başlat"},
			Question: "Nasıl kampanya oluşturabilirim?",
			Answer: "Öğrenci hesabınızla giriş yaptıktan sonra \"Kampanya Oluştur\" adımlarını izleyin: " +
				"hedef tutarı belirleyin, hikayenizi yazın ve öğrenci belgenizi yükleyin. " +
				"Doğrulama tamamlanınca kampanyanız yayına alınır.",
			FollowUp: "Doğrulama süreci hakkında bilgi almak ister misiniz?",
			Priority: 8,
		},
		{
			ID:       "student-apply",
			Category: CategoryStudent,
			Keywords: []string{"öğrenciyim", "destek al", "burs başvuru", "yardım al", "öğrenci başvuru"},
			Question: "Öğrenciyim, nasıl destek alabilirim?",
			Answer: "Platforma öğrenci olarak kayıt olup doğrulamayı tamamladıktan sonra kendi kampanyanızı " +
				"açabilirsiniz. Eğitim giderlerinizi kalem kalem anlatmanız destekçi bulma şansınızı artırır.",
			Priority: 8,
		},
		{
			ID:       "platform-fee",
			Category: CategoryPlatform,
			Keywords: []string{"komisyon", "kesinti", "platform ücreti", "ne kadarı ulaşıyor"},
			Question: "Bağışımdan kesinti yapılıyor mu?",
			Answer: "Platform, bağışlardan komisyon almaz. Yalnızca ödeme kuruluşunun işlem ücreti " +
				"(yaklaşık %2,9) düşülür; kalan tutarın tamamı öğrenciye ulaşır.",
			Priority: 7,
		},
		{
			ID:       "monthly-support",
			Category: CategoryDonation,
			Keywords: []string{"aylık destek", "düzenli bağış", "burs ver", "tekrarlayan bağış"},
			Question: "Bir öğrenciye düzenli destek olabilir miyim?",
			Answer: "Evet. Bağış ekranında \"Aylık Destek\" seçeneğini işaretlerseniz belirlediğiniz tutar " +
				"her ay otomatik olarak öğrencinin kampanyasına aktarılır. İstediğiniz zaman iptal edebilirsiniz.",
			Priority: 7,
		},
		{
			ID:       "refund-policy",
			Category: CategoryRefund,
			Keywords: []string{"iade", "geri ödeme", "bağış iptal", "yanlış bağış"},
			Question: "Bağışımı iade alabilir miyim?",
			Answer: "Yanlışlıkla yapılan bağışlar için 24 saat içinde destek ekibimize yazmanız yeterli. " +
				"Kampanya sahibine aktarılmamış bağışlar aynı ödeme yöntemine iade edilir.",
			Priority: 6,
		},
		{
			ID:       "anonymous-donation",
			Category: CategoryDonation,
			Keywords: []string{"anonim", "isimsiz bağış", "ismim görünmesin", "gizli bağış"},
			Question: "İsmim görünmeden bağış yapabilir miyim?",
			Answer: "Elbette. Bağış adımında \"Anonim bağış\" seçeneğini işaretlerseniz adınız ne kampanya " +
				"sayfasında ne de öğrenciye giden bildirimde görünür.",
			Priority: 6,
		},
		{
			ID:       "campaign-progress",
			Category: CategoryCampaign,
			Keywords: []string{"hedefe ulaşamazsa", "toplanamazsa", "hedef tutar", "kampanya biterse"},
			Question: "Kampanya hedefine ulaşamazsa ne olur?",
			Answer: "Kampanya hedefine ulaşamasa bile toplanan tutar öğrenciye aktarılır. " +
				"Hedef, ihtiyacın görünür olması içindir; tamamı toplanmadan da ödeme yapılır.",
			Priority: 6,
		},
		{
			ID:       "tax-receipt",
			Category: CategoryTax,
			Keywords: []string{"vergi", "makbuz", "bağış makbuzu", "vergi indirimi", "fatura"},
			Question: "Bağışım için makbuz alabilir miyim?",
			Answer: "Her bağıştan sonra e-posta adresinize dijital bağış dekontu gönderilir. " +
				"Vergi indirimi koşulları bağlı olduğunuz vergi dairesine göre değişir; dekont bu başvuruda kullanılabilir.",
			Priority: 5,
		},
		{
			ID:       "privacy",
			Category: CategoryPrivacy,
			Keywords: []string{"gizlilik", "kişisel veri", "kvkk", "verilerim", "bilgilerim"},
			Question: "Kişisel verilerim nasıl korunuyor?",
			Answer: "Verileriniz KVKK kapsamında işlenir, üçüncü taraflarla pazarlama amaçlı paylaşılmaz. " +
				"Gizlilik politikamızın tamamına hesap ayarlarınızdan ulaşabilirsiniz.",
			Priority: 5,
		},
		{
			ID:       "contact-support",
			Category: CategoryContact,
			Keywords: []string{"iletişim", "destek ekibi", "ulaşmak istiyorum", "canlı destek", "mail adresi"},
			Question: "Destek ekibine nasıl ulaşırım?",
			Answer: "Bize destek@okulfonu.example adresinden ya da hafta içi 09.00-18.00 arası canlı destek " +
				"hattından ulaşabilirsiniz. Genellikle bir iş günü içinde yanıt veriyoruz.",
			Priority: 5,
		},
		{
			ID:       "password-reset",
			Category: CategoryAccount,
			Keywords: []string{"şifre", "parola", "şifremi unuttum", "giriş yapamıyorum"},
			Question: "Şifremi unuttum, ne yapmalıyım?",
			Answer: "Giriş ekranındaki \"Şifremi Unuttum\" bağlantısına tıklayın; e-posta adresinize " +
				"sıfırlama bağlantısı gönderilir. Bağlantı bir saat boyunca geçerlidir.",
			Priority: 4,
		},
		{
			ID:       "account-delete",
			Category: CategoryAccount,
			Keywords: []string{"hesabımı sil", "hesap kapat", "üyelik iptal"},
			Question: "Hesabımı nasıl silebilirim?",
			Answer: "Hesap ayarlarından \"Hesabı Kapat\" adımlarını izleyebilirsiniz. Aktif aylık destekleriniz " +
				"varsa kapatma öncesinde otomatik olarak iptal edilir.",
			Priority: 4,
		},
		{
			ID:       "campaign-share",
			Category: CategoryCampaign,
			Keywords: []string{"paylaş", "sosyal medya", "kampanya linki", "duyurmak"},
			Question: "Bir kampanyayı nasıl paylaşabilirim?",
			Answer: "Kampanya sayfasındaki paylaş simgesiyle bağlantıyı kopyalayabilir veya doğrudan sosyal " +
				"medya hesaplarınızda paylaşabilirsiniz. Paylaşım, bağış kadar değerli bir destektir.",
			Priority: 4,
		},
		{
			ID:       "volunteer",
			Category: CategoryVolunteer,
			Keywords: []string{"gönüllü", "gönüllü ol", "katkıda bulun"},
			Question: "Gönüllü olarak nasıl katkı sağlayabilirim?",
			Answer: "Gönüllü programımızda çeviri, içerik ve mentorluk alanlarında destek verebilirsiniz. " +
				"Başvuru formuna \"Gönüllü Ol\" sayfasından ulaşabilirsiniz.",
			Priority: 3,
		},
		{
			ID:       "corporate",
			Category: CategoryCorporate,
			Keywords: []string{"kurumsal", "şirket bağışı", "sponsor", "toplu bağış"},
			Question: "Şirket olarak bağış yapabilir miyiz?",
			Answer: "Kurumsal bağış ve burs havuzu programlarımız için kurumsal@okulfonu.example adresine " +
				"yazabilirsiniz. Şirketinize özel raporlama ve fatura desteği sağlıyoruz.",
			Priority: 3,
		},
		{
			ID:       "what-is-platform",
			Category: CategoryGeneral,
			Keywords: []string{"nedir", "nasıl çalışır", "platform nedir", "siteniz ne"},
			Question: "Bu platform nedir, nasıl çalışır?",
			Answer: "Okul Fonu, maddi desteğe ihtiyaç duyan doğrulanmış öğrencileri bağışçılarla buluşturan " +
				"bir kitle fonlama platformudur. Öğrenciler kampanya açar, bağışçılar diledikleri kampanyaya destek olur.",
			Priority: 6,
		},
		{
			ID:       "farewell",
			Category: CategoryGeneral,
			Keywords: []string{"güle güle", "hoşça kal", "görüşürüz", "iyi günler"},
			Question: "Görüşmek üzere!",
			Answer: "Görüşmek üzere! Sorularınız olursa her zaman buradayım. 💙",
			Priority: 2,
		},
	}
}
