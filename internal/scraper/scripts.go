package scraper

const consentScript = `(function () {
  const selectors = [
    'button[aria-label*="Accept all"]',
    'button[aria-label="I agree"]',
    'form[action*="consent"] button'
  ];
  for (const sel of selectors) {
    const btn = document.querySelector(sel);
    if (btn && btn.offsetParent !== null) {
      btn.click();
      return true;
    }
  }
  const labels = ['Accept all', 'I agree'];
  for (const btn of document.querySelectorAll('button')) {
    const text = (btn.innerText || '').trim();
    if (labels.some(l => text.includes(l))) {
      btn.click();
      return true;
    }
  }
  return false;
})();`

const countScript = `document.querySelectorAll('a[href*="/maps/place"]').length`

const scrollScript = `(function () {
  const feed = document.querySelector('div[role="feed"]');
  if (feed) {
    feed.scrollBy(0, 10000);
  } else {
    window.scrollBy(0, 10000);
  }
})();`

const headerScript = `(function () {
  const h = document.querySelector('h1.DUwDvf');
  return h ? h.textContent.trim() : '';
})();`

// clickScript is formatted with the listing index.
const clickScript = `(function () {
  const links = document.querySelectorAll('a[href*="/maps/place"]');
  const link = links[%d];
  if (!link) {
    return '';
  }
  link.scrollIntoView({block: 'center'});
  (link.parentElement || link).click();
  return link.href || '';
})();`

const detailReadyScript = `(previous) => {
  const h = document.querySelector('h1.DUwDvf');
  if (!h) {
    return false;
  }
  const text = h.textContent.trim();
  return text !== '' && text !== previous;
}`

const detailScript = `(function () {
  const text = (sel) => {
    const node = document.querySelector(sel);
    return node ? (node.innerText || node.textContent || '').trim() : '';
  };
  const attr = (sel, name) => {
    const node = document.querySelector(sel);
    return node ? (node.getAttribute(name) || '') : '';
  };

  let phone = text('button[data-item-id^="phone:tel:"] .fontBodyMedium');
  if (!phone) {
    phone = attr('button[data-item-id^="phone:tel:"]', 'data-item-id').replace('phone:tel:', '');
  }

  const websiteNode = document.querySelector('a[data-item-id="authority"]');
  const infoLines = Array.from(document.querySelectorAll('div.LTs0Rc')).slice(0, 3)
    .map(n => (n.innerText || n.textContent || '').trim());

  return JSON.stringify({
    name: text('h1.DUwDvf'),
    address: text('button[data-item-id="address"] .fontBodyMedium'),
    website: websiteNode ? (websiteNode.href || websiteNode.getAttribute('href') || '') : '',
    website_text: text('a[data-item-id="authority"] .fontBodyMedium'),
    phone: phone,
    reviews_count: attr('div.F7nice span[aria-label] span[aria-label]', 'aria-label') ||
      text('div.F7nice span[aria-label]'),
    reviews_average: text('div.F7nice span[aria-hidden="true"]'),
    info_lines: infoLines,
    opens_at: text('button[data-item-id*="oh"] .fontBodyMedium'),
    opens_at_alt: text('div.MkV9 span.ZDu9vd span:nth-child(2)'),
    place_type: text('button.DkEaL'),
    introduction: text('div.PYvSYb'),
    maps_url: window.location.href
  });
})();`
